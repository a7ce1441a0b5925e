package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gendocsets"
)

// Ensure LoggingDocumentStore implements gendocsets.DocumentStore.
var _ gendocsets.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with logging.
type LoggingDocumentStore struct {
	next   gendocsets.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next gendocsets.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

// CopyTree delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) CopyTree(ctx context.Context, srcDir string, skip func(rel string, isDir bool) bool) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("copy tree",
			"src", srcDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CopyTree(ctx, srcDir, skip)
}

// WriteFile delegates to the wrapped store and logs the write.
func (s *LoggingDocumentStore) WriteFile(ctx context.Context, rel string, data []byte) (err error) {
	defer func() {
		s.logger.Debug("write file", "path", rel, "bytes", len(data), "err", err)
	}()
	return s.next.WriteFile(ctx, rel, data)
}

// CopyFile delegates to the wrapped store and logs the copy.
func (s *LoggingDocumentStore) CopyFile(ctx context.Context, src, rel string) (err error) {
	defer func() {
		s.logger.Debug("copy file", "src", src, "path", rel, "err", err)
	}()
	return s.next.CopyFile(ctx, src, rel)
}

// Path delegates to the wrapped store.
func (s *LoggingDocumentStore) Path(rel string) string {
	return s.next.Path(rel)
}

// Commit delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) Commit() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("commit bundle", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Commit()
}

// Abort delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) Abort() (err error) {
	defer func() {
		s.logger.Info("abort bundle", "err", err)
	}()
	return s.next.Abort()
}
