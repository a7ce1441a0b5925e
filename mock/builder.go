package mock

import (
	"context"

	"github.com/fwojciec/gendocsets"
)

var _ gendocsets.Builder = (*Builder)(nil)

// Builder is a mock implementation of gendocsets.Builder.
type Builder struct {
	BuildFn  func(ctx context.Context, corpusDir string) (*gendocsets.BuildResult, error)
	SourceFn func() gendocsets.Source
}

func (b *Builder) Build(ctx context.Context, corpusDir string) (*gendocsets.BuildResult, error) {
	return b.BuildFn(ctx, corpusDir)
}

func (b *Builder) Source() gendocsets.Source {
	return b.SourceFn()
}
