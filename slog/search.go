package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gendocsets"
)

// Ensure LoggingSearchService implements gendocsets.SearchService.
var _ gendocsets.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   gendocsets.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next gendocsets.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, query string) (results []gendocsets.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

// Related delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Related(ctx context.Context, pagePath string) (results []gendocsets.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("related symbols",
			"page", pagePath,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Related(ctx, pagePath)
}
