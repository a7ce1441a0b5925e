package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gendocsets"
)

// Ensure LoggingSymbolService implements gendocsets.SymbolService.
var _ gendocsets.SymbolService = (*LoggingSymbolService)(nil)

// LoggingSymbolService wraps a SymbolService with debug logging.
// Inserts are logged at debug level since a build performs thousands.
type LoggingSymbolService struct {
	next   gendocsets.SymbolService
	logger *slog.Logger
}

// NewLoggingSymbolService creates a new LoggingSymbolService.
func NewLoggingSymbolService(next gendocsets.SymbolService, logger *slog.Logger) *LoggingSymbolService {
	return &LoggingSymbolService{next: next, logger: logger}
}

// CreateSymbol delegates to the wrapped service and logs the insert.
func (s *LoggingSymbolService) CreateSymbol(ctx context.Context, sym *gendocsets.Symbol) (err error) {
	defer func() {
		if err != nil {
			s.logger.Error("create symbol", "type", sym.Type, "name", sym.Name, "path", sym.Path, "err", err)
			return
		}
		s.logger.Debug("create symbol", "id", sym.ID, "type", sym.Type, "name", sym.Name, "path", sym.Path)
	}()
	return s.next.CreateSymbol(ctx, sym)
}

// FindSymbols delegates to the wrapped service and logs the operation.
func (s *LoggingSymbolService) FindSymbols(ctx context.Context, filter gendocsets.SymbolFilter) (symbols []*gendocsets.Symbol, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find symbols",
			"count", len(symbols),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSymbols(ctx, filter)
}

// CountSymbolsByType delegates to the wrapped service.
func (s *LoggingSymbolService) CountSymbolsByType(ctx context.Context) (map[string]int, error) {
	return s.next.CountSymbolsByType(ctx)
}

// Digest delegates to the wrapped service and logs the digest.
func (s *LoggingSymbolService) Digest(ctx context.Context) (digest string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("index digest",
			"digest", digest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Digest(ctx)
}
