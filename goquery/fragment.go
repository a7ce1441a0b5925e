package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gendocsets"
)

// ExtractFragment returns the HTML documenting the element with the given
// id: the whole description list for a Sphinx dt, a heading with the
// content up to the next heading of the same level, or the element itself.
// Legacy <a name> anchors select their parent. Without a match, or with an
// empty id, the page body is returned.
func ExtractFragment(page, id string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", gendocsets.Errorf(gendocsets.EINVALID, "failed to parse HTML: %v", err)
	}

	if id != "" {
		if sel := findAnchor(doc, id); sel.Length() > 0 {
			return fragmentHTML(sel)
		}
	}
	return doc.Find("body").Html()
}

// pageChrome matches what documentation generators add around the
// documentation itself: Sphinx permalinks and navigation, Qt navigation bars
// and JSDuck expand toggles.
const pageChrome = "script, a.headerlink, div.related, div.sphinxsidebar, div.footer, " +
	"div.navigationbar, .members .member a.side.expandable"

// StripChrome removes generator chrome from a page so that content
// extraction only sees documentation. JSDuck member summaries are dropped
// where the full description follows them.
func StripChrome(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", gendocsets.Errorf(gendocsets.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(pageChrome).Remove()
	doc.Find(".members .member div.short").Each(func(_ int, short *goquery.Selection) {
		if short.SiblingsFiltered("div.long").Length() > 0 {
			short.Remove()
		}
	})
	return doc.Html()
}

func findAnchor(doc *goquery.Document, id string) *goquery.Selection {
	match := func(attr string) func(int, *goquery.Selection) bool {
		return func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr(attr)
			return v == id
		}
	}
	if sel := doc.Find("[id]").FilterFunction(match("id")).First(); sel.Length() > 0 {
		return sel
	}
	return doc.Find("a[name]").FilterFunction(match("name")).First().Parent()
}

func fragmentHTML(sel *goquery.Selection) (string, error) {
	switch tag := goquery.NodeName(sel); tag {
	case "dt":
		return goquery.OuterHtml(sel.Parent())
	case "h1", "h2", "h3", "h4", "h5", "h6":
		var b strings.Builder
		for s := sel; s.Length() > 0; s = s.Next() {
			if s != sel && goquery.NodeName(s) == tag {
				break
			}
			html, err := goquery.OuterHtml(s)
			if err != nil {
				return "", err
			}
			b.WriteString(html)
		}
		return b.String(), nil
	default:
		return goquery.OuterHtml(sel)
	}
}
