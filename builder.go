package gendocsets

import "context"

// Source identifies a documentation generator a crawler understands.
type Source string

// Supported documentation sources.
const (
	SourceJSDuck Source = "jsduck"
	SourceSphinx Source = "sphinx"
	SourceQt     Source = "qt"
)

// IndexFormat returns the index schema docsets of this source are written in.
func (s Source) IndexFormat() IndexFormat {
	if s == SourceJSDuck {
		return FormatDash
	}
	return FormatZeal
}

// BuildResult summarizes a single crawler run.
type BuildResult struct {
	Source  Source
	Pages   int
	Symbols int

	// MissingLinks counts distinct cross-reference targets that could not
	// be resolved.
	MissingLinks int

	// UnknownSections lists section titles the classifier had no symbol
	// type for, sorted.
	UnknownSections []string

	// IndexFile is the suggested landing page relative to Documents/,
	// empty when the corpus has none.
	IndexFile string
}

// Builder crawls one documentation corpus: it copies and rewrites pages
// into a DocumentStore and indexes symbols into a SymbolService.
type Builder interface {
	// Build processes the corpus rooted at corpusDir.
	// Returns ENOTFOUND if an expected corpus file is missing and EINVALID
	// if markup does not have the expected structure.
	Build(ctx context.Context, corpusDir string) (*BuildResult, error)

	// Source returns the documentation source handled by the builder.
	Source() Source
}

// ClassBundle is one decoded JSDuck class file.
type ClassBundle struct {
	// Name is the class name recorded in the bundle, possibly empty.
	Name string

	// HTML is the rendered class documentation.
	HTML string
}

// BundleDecoder decodes JSON-in-JS class bundles such as
// "Ext.data.JsonP.Ext_Component({...})".
type BundleDecoder interface {
	// DecodeBundle returns EINVALID if data has no JSON payload or no
	// html field.
	DecodeBundle(data []byte) (*ClassBundle, error)
}

// KeyFilter is a probabilistic set used to report each warning once.
// Test may return false positives but never false negatives.
type KeyFilter interface {
	Add(key string)
	Test(key string) bool
}
