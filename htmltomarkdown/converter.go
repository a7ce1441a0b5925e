// Package htmltomarkdown renders docset pages as Markdown for the terminal.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gendocsets"
)

// Ensure Converter implements gendocsets.Converter at compile time.
var _ gendocsets.Converter = (*Converter)(nil)

// chrome matches page decoration that carries no documentation: Sphinx
// permalink markers, JSDuck source links and expand toggles, scripts.
const chrome = "script, style, a.headerlink, a.view-source, .viewsource, a.side.expandable"

// Converter wraps html-to-markdown to convert documentation HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert strips page chrome from html and transforms the rest into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", gendocsets.Errorf(gendocsets.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", gendocsets.Errorf(gendocsets.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(chrome).Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(body)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
