package goquery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gendocsets"
)

// Ensure QtBuilder implements gendocsets.Builder at compile time.
var _ gendocsets.Builder = (*QtBuilder)(nil)

// Qt corpus layout.
const (
	qtModules   = "qtdoc/modules.html"
	qtClasses   = "qtdoc/classes.html"
	qtFunctions = "qtdoc/functions.html"
	qtIndex     = "qtdoc/index.html"
)

// QtBuilder indexes modules, classes, class members and global functions
// of the Qt reference documentation. Pages are copied unchanged.
type QtBuilder struct {
	Symbols   gendocsets.SymbolService
	Documents gendocsets.DocumentStore

	Logger      *slog.Logger
	Concurrency int
}

type qtClass struct {
	name string
	url  string
}

type qtMember struct {
	name string
	href string
}

// Source returns gendocsets.SourceQt.
func (b *QtBuilder) Source() gendocsets.Source {
	return gendocsets.SourceQt
}

// Build indexes modules.html, every class listed in classes.html together
// with the members on its page, and the global functions in functions.html.
func (b *QtBuilder) Build(ctx context.Context, corpusDir string) (*gendocsets.BuildResult, error) {
	logger := loggerOrDiscard(b.Logger)
	result := &gendocsets.BuildResult{Source: gendocsets.SourceQt}
	w := newSymbolWriter(b.Symbols)

	modules, err := readDocument(corpusDir, qtModules)
	if err != nil {
		return nil, err
	}
	if err := b.indexModules(ctx, w, modules); err != nil {
		return nil, err
	}

	classIndex, err := readDocument(corpusDir, qtClasses)
	if err != nil {
		return nil, err
	}
	classes := listQtClasses(classIndex)

	// Several classes may share a page; each page is parsed once.
	var pages []string
	members := make(map[string][]qtMember)
	for _, c := range classes {
		page, _ := gendocsets.SplitFragment(c.url)
		if _, ok := members[page]; !ok {
			members[page] = nil
			pages = append(pages, page)
		}
	}
	docs, err := parseAll(ctx, b.Concurrency, corpusDir, pages)
	if err != nil {
		return nil, err
	}
	for i, doc := range docs {
		members[pages[i]] = listQtMembers(doc)
	}
	result.Pages = len(pages)
	logger.Debug("class pages parsed", "classes", len(classes), "pages", len(pages))

	for _, c := range classes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cls, err := w.create(ctx, gendocsets.TypeClass, c.name, c.url, nil)
		if err != nil {
			return nil, err
		}

		page, _ := gendocsets.SplitFragment(c.url)
		base, _, _ := strings.Cut(c.url, "/")
		for _, m := range members[page] {
			if _, err := w.create(ctx, gendocsets.TypeMember, m.name, base+"/"+m.href, &cls.ID); err != nil {
				return nil, err
			}
		}
	}

	functions, err := readDocument(corpusDir, qtFunctions)
	if err != nil {
		return nil, err
	}
	if err := b.indexFunctions(ctx, w, functions); err != nil {
		return nil, err
	}
	result.Symbols = w.count()

	if err := b.Documents.CopyTree(ctx, corpusDir, skipQt); err != nil {
		return nil, fmt.Errorf("copy corpus: %w", err)
	}
	if fileExists(corpusDir, qtIndex) {
		result.IndexFile = qtIndex
	}

	return result, nil
}

func (b *QtBuilder) indexModules(ctx context.Context, w *symbolWriter, doc *goquery.Document) error {
	var err error
	doc.Find("table.generic tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		a := tr.ChildrenFiltered("td").First().ChildrenFiltered("a").First()
		name := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if name == "" || href == "" {
			return true
		}
		_, err = w.create(ctx, gendocsets.TypeModule, name, stripParentDirs(href), nil)
		return err == nil
	})
	return err
}

// indexFunctions inserts the entries of functions.html marked "global".
// The function name is the list item's own text, e.g. "qAbs: global".
func (b *QtBuilder) indexFunctions(ctx context.Context, w *symbolWriter, doc *goquery.Document) error {
	var err error
	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		a := li.ChildrenFiltered("a").First()
		if a.Length() == 0 || a.Text() != "global" {
			return true
		}
		name := strings.Trim(ownText(li), ": \t\n")
		href, _ := a.Attr("href")
		if name == "" || href == "" {
			return true
		}
		_, err = w.create(ctx, gendocsets.TypeFunction, name, stripParentDirs(href), nil)
		return err == nil
	})
	return err
}

// listQtClasses returns the local classes of classes.html in document order.
func listQtClasses(doc *goquery.Document) []qtClass {
	var classes []qtClass
	doc.Find("dd").Each(func(_ int, dd *goquery.Selection) {
		a := dd.ChildrenFiltered("a").First()
		name := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if name == "" || href == "" {
			return
		}
		url := stripParentDirs(href)
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			return
		}
		classes = append(classes, qtClass{name: name, url: url})
	})
	return classes
}

// listQtMembers returns the member links of a class page's summary tables.
func listQtMembers(doc *goquery.Document) []qtMember {
	members := []qtMember{}
	doc.Find("td.memItemRight.bottomAlign > b > a").Each(func(_ int, a *goquery.Selection) {
		name := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		if name == "" || href == "" {
			return
		}
		members = append(members, qtMember{name: name, href: href})
	})
	return members
}

func skipQt(rel string, _ bool) bool {
	return isBundleOutput(rel)
}
