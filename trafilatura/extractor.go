// Package trafilatura extracts the main content of documentation pages
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements gendocsets.Extractor at compile time.
var _ gendocsets.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract strips generator chrome from a documentation page and returns its
// main content. Cross-reference links and tables are kept, and recall is
// favored because reference pages are short and dense.
func (e *Extractor) Extract(rawHTML string) (*gendocsets.ExtractResult, error) {
	if rawHTML == "" {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "empty HTML input")
	}

	page, err := goquery.StripChrome(rawHTML)
	if err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		Focus:          trafilatura.FavorRecall,
		IncludeLinks:   true,
		ExcludeTables:  false,
	}

	result, err := trafilatura.Extract(strings.NewReader(page), opts)
	if err != nil {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "failed to extract page content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &gendocsets.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
