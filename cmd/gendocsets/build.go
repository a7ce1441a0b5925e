package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/bloom"
	"github.com/fwojciec/gendocsets/crawl"
	"github.com/fwojciec/gendocsets/fs"
	"github.com/fwojciec/gendocsets/goquery"
	gdslog "github.com/fwojciec/gendocsets/slog"
	"github.com/fwojciec/gendocsets/sqlite"
	"github.com/fwojciec/gendocsets/yaml"
)

// Sizing of the missing link filter. A false positive only hides a warning.
const (
	warningCapacity = 10000
	warningFPRate   = 0.001
)

// Run executes the jsduck command.
func (c *JSDuckCmd) Run(deps *Dependencies) error {
	return c.build(deps, gendocsets.SourceJSDuck, gendocsets.Docset{Name: "ExtJS", PlatformFamily: "extjs"})
}

// Run executes the sphinx command.
func (c *SphinxCmd) Run(deps *Dependencies) error {
	return c.build(deps, gendocsets.SourceSphinx, gendocsets.Docset{Name: "Python", PlatformFamily: "python"})
}

// Run executes the qt command.
func (c *QtCmd) Run(deps *Dependencies) error {
	return c.build(deps, gendocsets.SourceQt, gendocsets.Docset{Name: "Qt", PlatformFamily: "qt"})
}

// build generates a bundle for source in the output directory. Metadata is
// taken from defaults, then the manifest, then the flags.
func (f *BuildFlags) build(deps *Dependencies, source gendocsets.Source, docset gendocsets.Docset) error {
	icon := f.Icon
	if f.Manifest != "" {
		m, err := yaml.LoadManifest(f.Manifest)
		if err != nil {
			return err
		}
		m.Apply(&docset)
		if icon == "" {
			icon = m.Icon
		}
	}
	if f.Name != "" {
		docset.Name = f.Name
	}
	if err := docset.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(f.Corpus)
	if err != nil || !info.IsDir() {
		return gendocsets.Errorf(gendocsets.ENOTFOUND, "corpus directory %s not found", f.Corpus)
	}
	if err := os.MkdirAll(f.Out, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	bundle, err := fs.NewBundle(f.Out, docset.Name)
	if err != nil {
		return err
	}

	db := sqlite.NewDB(bundle.Path(gendocsets.IndexPath))
	db.Format = source.IndexFormat()
	if err := db.Open(); err != nil {
		_ = bundle.Abort()
		return err
	}

	logger := deps.Logger
	symbols := gdslog.NewLoggingSymbolService(sqlite.NewSymbolService(db), logger)
	documents := gdslog.NewLoggingDocumentStore(bundle, logger)

	var builder gendocsets.Builder
	switch source {
	case gendocsets.SourceJSDuck:
		builder = &goquery.JSDuckBuilder{
			Symbols:     symbols,
			Documents:   documents,
			Bundles:     deps.Bundles,
			Warnings:    bloom.NewFilter(warningCapacity, warningFPRate),
			Logger:      logger,
			Concurrency: f.Concurrency,
		}
	case gendocsets.SourceSphinx:
		builder = &goquery.SphinxBuilder{
			Symbols:     symbols,
			Documents:   documents,
			Logger:      logger,
			Concurrency: f.Concurrency,
		}
	default:
		builder = &goquery.QtBuilder{
			Symbols:     symbols,
			Documents:   documents,
			Logger:      logger,
			Concurrency: f.Concurrency,
		}
	}

	runner := &crawl.Runner{
		Builder:   gdslog.NewLoggingBuilder(builder, logger),
		Index:     db,
		Documents: documents,
		Metadata:  deps.Metadata,
	}
	result, err := runner.Run(deps.Ctx, f.Corpus, crawl.Options{Docset: docset, Icon: icon})
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %s: %d symbols from %d pages\n", bundle.FinalDir(), result.Symbols, result.Pages)
	if result.MissingLinks > 0 {
		fmt.Fprintf(deps.Stdout, "  %d link targets not found\n", result.MissingLinks)
	}
	for _, title := range result.UnknownSections {
		fmt.Fprintf(deps.Stdout, "  unknown section: %s\n", title)
	}
	return nil
}
