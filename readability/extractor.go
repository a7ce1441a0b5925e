// Package readability extracts the main content of documentation pages
// using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements gendocsets.Extractor at compile time.
var _ gendocsets.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract strips generator chrome from a documentation page and returns its
// main content.
func (e *Extractor) Extract(rawHTML string) (*gendocsets.ExtractResult, error) {
	if rawHTML == "" {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "empty HTML input")
	}

	page, err := goquery.StripChrome(rawHTML)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(page), nil)
	if err != nil {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "failed to extract page content: %v", err)
	}

	return &gendocsets.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
