// Package crawl orchestrates docset builds. It runs a crawler against a
// corpus inside one index transaction, writes the bundle metadata and
// commits the staged bundle only when every step succeeded.
package crawl

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/gendocsets"
)

// Index is the transactional side of a symbol index.
type Index interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	Close() error
}

// Runner builds one docset bundle.
type Runner struct {
	Builder   gendocsets.Builder
	Index     Index
	Documents gendocsets.DocumentStore
	Metadata  gendocsets.MetadataCodec
}

// Options holds the per-build inputs that do not come from the corpus.
type Options struct {
	// Docset is the bundle metadata. An empty IndexFilePath is filled from
	// the build result.
	Docset gendocsets.Docset

	// Icon is the path of an optional PNG copied to the bundle root.
	Icon string
}

// Result holds the outcome of a build.
type Result struct {
	gendocsets.BuildResult

	// Docset is the metadata written to Info.plist.
	Docset gendocsets.Docset
}

// Run builds the bundle for the corpus at corpusDir. On failure the index
// transaction is rolled back and the staged bundle is discarded, leaving
// any previous bundle in place.
func (r *Runner) Run(ctx context.Context, corpusDir string, opts Options) (_ *Result, err error) {
	indexOpen := true
	defer func() {
		if err == nil {
			return
		}
		if indexOpen {
			err = errors.Join(err, r.Index.Rollback(), r.Index.Close())
		}
		err = errors.Join(err, r.Documents.Abort())
	}()

	docset := opts.Docset
	if err := docset.Validate(); err != nil {
		return nil, err
	}

	if err := r.Index.Begin(ctx); err != nil {
		return nil, err
	}

	built, err := r.Builder.Build(ctx, corpusDir)
	if err != nil {
		return nil, err
	}

	if err := r.Index.Commit(); err != nil {
		return nil, err
	}
	indexOpen = false
	if err := r.Index.Close(); err != nil {
		return nil, fmt.Errorf("close index: %w", err)
	}

	if docset.IndexFilePath == "" {
		docset.IndexFilePath = built.IndexFile
	}
	docset.Normalize()

	plist, err := r.Metadata.EncodeMetadata(&docset)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	if err := r.Documents.WriteFile(ctx, gendocsets.InfoPlistPath, plist); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	if opts.Icon != "" {
		if err := r.Documents.CopyFile(ctx, opts.Icon, gendocsets.IconPath); err != nil {
			return nil, fmt.Errorf("copy icon: %w", err)
		}
	}

	if err := r.Documents.Commit(); err != nil {
		return nil, fmt.Errorf("commit bundle: %w", err)
	}

	return &Result{BuildResult: *built, Docset: docset}, nil
}
