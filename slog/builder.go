// Package slog provides logging decorators for the gendocsets services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gendocsets"
)

// Ensure LoggingBuilder implements gendocsets.Builder.
var _ gendocsets.Builder = (*LoggingBuilder)(nil)

// LoggingBuilder wraps a Builder with logging of each build.
type LoggingBuilder struct {
	next   gendocsets.Builder
	logger *slog.Logger
}

// NewLoggingBuilder creates a new LoggingBuilder.
func NewLoggingBuilder(next gendocsets.Builder, logger *slog.Logger) *LoggingBuilder {
	return &LoggingBuilder{next: next, logger: logger}
}

// Build delegates to the wrapped builder and logs the result summary.
func (b *LoggingBuilder) Build(ctx context.Context, corpusDir string) (result *gendocsets.BuildResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", b.next.Source(),
			"corpus", corpusDir,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"pages", result.Pages,
				"symbols", result.Symbols,
				"missing_links", result.MissingLinks,
			)
		}
		attrs = append(attrs, "err", err)
		b.logger.Info("build", attrs...)
	}(time.Now())
	return b.next.Build(ctx, corpusDir)
}

// Source delegates to the wrapped builder.
func (b *LoggingBuilder) Source() gendocsets.Source {
	return b.next.Source()
}
