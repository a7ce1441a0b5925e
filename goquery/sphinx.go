package goquery

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gendocsets"
)

// Ensure SphinxBuilder implements gendocsets.Builder at compile time.
var _ gendocsets.Builder = (*SphinxBuilder)(nil)

// Sphinx corpus layout.
const (
	sphinxModIndex = "py-modindex.html"
	sphinxStdTypes = "library/stdtypes.html"
	sphinxIndex    = "index.html"
)

// SphinxBuilder indexes modules, classes and methods of Sphinx generated
// Python documentation. Pages are copied unchanged.
type SphinxBuilder struct {
	Symbols   gendocsets.SymbolService
	Documents gendocsets.DocumentStore

	Logger      *slog.Logger
	Concurrency int
}

// Source returns gendocsets.SourceSphinx.
func (b *SphinxBuilder) Source() gendocsets.Source {
	return gendocsets.SourceSphinx
}

// Build indexes the module index, the classes of every module page and the
// methods of the builtin types.
func (b *SphinxBuilder) Build(ctx context.Context, corpusDir string) (*gendocsets.BuildResult, error) {
	logger := loggerOrDiscard(b.Logger)
	result := &gendocsets.BuildResult{Source: gendocsets.SourceSphinx}
	w := newSymbolWriter(b.Symbols)

	modindex, err := readDocument(corpusDir, sphinxModIndex)
	if err != nil {
		return nil, err
	}
	files, err := b.indexModules(ctx, w, modindex)
	if err != nil {
		return nil, err
	}
	logger.Debug("modules indexed", "modules", w.count(), "files", len(files))

	docs, err := parseAll(ctx, b.Concurrency, corpusDir, files)
	if err != nil {
		return nil, err
	}
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.indexClasses(ctx, w, files[i], doc); err != nil {
			return nil, err
		}
		result.Pages++
	}

	stdtypes, err := readDocument(corpusDir, sphinxStdTypes)
	if err != nil {
		return nil, err
	}
	if err := b.indexBuiltinTypes(ctx, w, stdtypes); err != nil {
		return nil, err
	}
	result.Pages++
	result.Symbols = w.count()

	if err := b.Documents.CopyTree(ctx, corpusDir, skipSphinx); err != nil {
		return nil, fmt.Errorf("copy corpus: %w", err)
	}
	if fileExists(corpusDir, sphinxIndex) {
		result.IndexFile = sphinxIndex
	}

	return result, nil
}

// indexModules inserts one module row per module index entry and returns
// the distinct module pages, sorted.
func (b *SphinxBuilder) indexModules(ctx context.Context, w *symbolWriter, doc *goquery.Document) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	var err error
	doc.Find("table.indextable.modindextable tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		a := tr.ChildrenFiltered("td").Eq(1).ChildrenFiltered("a").First()
		if a.Length() == 0 {
			return true
		}
		href, _ := a.Attr("href")
		name := strings.TrimSpace(a.Find("tt, code").First().Text())
		if name == "" {
			name = strings.TrimSpace(a.Text())
		}
		if name == "" || href == "" {
			return true
		}

		if _, err = w.create(ctx, gendocsets.TypeModule, name, href, nil); err != nil {
			return false
		}

		file, _ := gendocsets.SplitFragment(href)
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// indexClasses inserts every dl.class of a module page and the methods
// nested directly in its body.
func (b *SphinxBuilder) indexClasses(ctx context.Context, w *symbolWriter, file string, doc *goquery.Document) error {
	var err error
	doc.Find("dl.class").EachWithBreak(func(_ int, dl *goquery.Selection) bool {
		dt := dl.ChildrenFiltered("dt").First()
		name := descName(dt)
		if name == "" {
			err = gendocsets.Errorf(gendocsets.EINVALID, "%s: class without a name", file)
			return false
		}

		var cls *gendocsets.Symbol
		if cls, err = w.create(ctx, gendocsets.TypeClass, name, anchored(file, dt), nil); err != nil {
			return false
		}

		dl.ChildrenFiltered("dd").ChildrenFiltered("dl.method").EachWithBreak(func(_ int, method *goquery.Selection) bool {
			mdt := method.ChildrenFiltered("dt").First()
			mname := descName(mdt)
			if mname == "" {
				err = gendocsets.Errorf(gendocsets.EINVALID, "%s: method of %s without a name", file, name)
				return false
			}
			_, err = w.create(ctx, gendocsets.TypeMember, mname, anchored(file, mdt), &cls.ID)
			return err == nil
		})
		return err == nil
	})
	return err
}

// indexBuiltinTypes inserts the methods documented in stdtypes.html. Their
// classes are not declared with dl.class, so each class is created the
// first time one of its methods is seen.
func (b *SphinxBuilder) indexBuiltinTypes(ctx context.Context, w *symbolWriter, doc *goquery.Document) error {
	classes := make(map[string]int64)

	var err error
	doc.Find("dl.method").EachWithBreak(func(_ int, method *goquery.Selection) bool {
		dt := method.ChildrenFiltered("dt").First()
		url := anchored(sphinxStdTypes, dt)

		className := strings.TrimSuffix(strings.TrimSpace(dt.Find(".descclassname").First().Text()), ".")
		if className == "" {
			// Methods nested in a class description: dl > dd > dl.method.
			className = descName(method.Parent().Parent().ChildrenFiltered("dt").First())
		}
		name := descName(dt)
		if className == "" || name == "" {
			err = gendocsets.Errorf(gendocsets.EINVALID, "%s: method %q without a class", sphinxStdTypes, name)
			return false
		}

		parent, ok := classes[className]
		if !ok {
			var cls *gendocsets.Symbol
			if cls, err = w.create(ctx, gendocsets.TypeClass, className, url, nil); err != nil {
				return false
			}
			parent = cls.ID
			classes[className] = parent
		}

		_, err = w.create(ctx, gendocsets.TypeMember, name, url, &parent)
		return err == nil
	})
	return err
}

// descName returns the object name of a description header. Older Sphinx
// renders it as tt.descname, newer releases as code.descname or
// span.sig-name.descname.
func descName(dt *goquery.Selection) string {
	return strings.TrimSpace(dt.Find(".descname").First().Text())
}

// anchored returns file with the id of dt as fragment, if dt has one.
func anchored(file string, dt *goquery.Selection) string {
	if id, ok := dt.Attr("id"); ok && id != "" {
		return file + "#" + id
	}
	return file
}

func skipSphinx(rel string, _ bool) bool {
	return isBundleOutput(rel)
}
