package mock

import (
	"context"

	"github.com/fwojciec/gendocsets"
)

var _ gendocsets.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of gendocsets.DocumentStore.
type DocumentStore struct {
	CopyTreeFn  func(ctx context.Context, srcDir string, skip func(rel string, isDir bool) bool) error
	WriteFileFn func(ctx context.Context, rel string, data []byte) error
	CopyFileFn  func(ctx context.Context, src, rel string) error
	PathFn      func(rel string) string
	CommitFn    func() error
	AbortFn     func() error
}

func (s *DocumentStore) CopyTree(ctx context.Context, srcDir string, skip func(rel string, isDir bool) bool) error {
	return s.CopyTreeFn(ctx, srcDir, skip)
}

func (s *DocumentStore) WriteFile(ctx context.Context, rel string, data []byte) error {
	return s.WriteFileFn(ctx, rel, data)
}

func (s *DocumentStore) CopyFile(ctx context.Context, src, rel string) error {
	return s.CopyFileFn(ctx, src, rel)
}

func (s *DocumentStore) Path(rel string) string {
	return s.PathFn(rel)
}

func (s *DocumentStore) Commit() error {
	return s.CommitFn()
}

func (s *DocumentStore) Abort() error {
	return s.AbortFn()
}

// MemoryStore returns a DocumentStore that keeps written files in files,
// keyed by bundle-relative path, and accepts every other call.
func MemoryStore(files map[string][]byte) *DocumentStore {
	return &DocumentStore{
		CopyTreeFn: func(context.Context, string, func(string, bool) bool) error { return nil },
		WriteFileFn: func(_ context.Context, rel string, data []byte) error {
			files[rel] = data
			return nil
		},
		CopyFileFn: func(_ context.Context, src, rel string) error {
			files[rel] = []byte(src)
			return nil
		},
		PathFn:   func(rel string) string { return rel },
		CommitFn: func() error { return nil },
		AbortFn:  func() error { return nil },
	}
}
