package goquery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gendocsets"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Ensure JSDuckBuilder implements gendocsets.Builder at compile time.
var _ gendocsets.Builder = (*JSDuckBuilder)(nil)

// JSDuck corpus layout.
const (
	jsduckBundleDir = "output"
	jsduckHTMLDir   = "html"
)

// jsduckExcluded lists top-level corpus entries that are not copied into
// Documents. The landing page only works inside the JSDuck app.
var jsduckExcluded = map[string]bool{
	"output":      true,
	"extjs-build": true,
	"guides":      true,
	"index.html":  true,
}

// jsduckSectionTypes maps members-section titles to index types.
var jsduckSectionTypes = map[string]string{
	"Methods":        gendocsets.TypeDashMethod,
	"Properties":     gendocsets.TypeDashAttribute,
	"Config options": gendocsets.TypeDashAttribute,
	"Events":         gendocsets.TypeDashEvent,
	"CSS Mixins":     gendocsets.TypeDashFunction,
	"CSS Variables":  gendocsets.TypeDashVariable,
}

// JSDuck closes member subtitles with the wrong tag.
var subtitleRe = regexp.MustCompile(`<h4 class='members-subtitle'>([^<>]+)</h3>`)

const jsduckShell = `<!DOCTYPE html>
<html>
<head>
<style>
body { margin: 2em; }
.members .member .short { display: none; }
.members .member .long { display: block; }
</style>
</head>
<body><div class="class-overview"><div class="x-panel-body"></div></div></body>
</html>`

// JSDuckBuilder converts JSDuck output (ExtJS, Sencha Touch, Titanium)
// into static class pages and a Dash index.
type JSDuckBuilder struct {
	Symbols   gendocsets.SymbolService
	Documents gendocsets.DocumentStore
	Bundles   gendocsets.BundleDecoder

	// Warnings de-duplicates missing link reports. An exact in-memory set
	// is used when nil.
	Warnings gendocsets.KeyFilter

	Logger      *slog.Logger
	Concurrency int
}

type jsduckPage struct {
	class string
	doc   *goquery.Document
}

// Source returns gendocsets.SourceJSDuck.
func (b *JSDuckBuilder) Source() gendocsets.Source {
	return gendocsets.SourceJSDuck
}

// Build loads every class bundle under output/, rewrites cross references
// to the generated html/ pages and indexes classes and their own members.
func (b *JSDuckBuilder) Build(ctx context.Context, corpusDir string) (*gendocsets.BuildResult, error) {
	logger := loggerOrDiscard(b.Logger)
	warnings := b.Warnings
	if warnings == nil {
		warnings = keySet{}
	}

	pages, err := b.loadBundles(ctx, corpusDir)
	if err != nil {
		return nil, err
	}

	// Every fragment must be known before the first link is rewritten.
	classes := make(map[string]bool, len(pages))
	fragments := gendocsets.NewFragmentIndex()
	for _, p := range pages {
		classes[p.class] = true
		page := p.class + ".html"
		p.doc.Find("div[id]").Each(func(_ int, div *goquery.Selection) {
			id, _ := div.Attr("id")
			fragments.Add(p.class, page, id)
		})
	}
	logger.Debug("fragment index built", "classes", len(pages), "fragments", fragments.Len())

	if err := b.Documents.CopyTree(ctx, corpusDir, skipJSDuck); err != nil {
		return nil, fmt.Errorf("copy corpus: %w", err)
	}

	stylesheet := findStylesheet(corpusDir)
	if stylesheet == "" {
		logger.Warn("no JSDuck stylesheet found", "corpus", corpusDir)
	}

	result := &gendocsets.BuildResult{Source: gendocsets.SourceJSDuck}
	w := newSymbolWriter(b.Symbols)
	unknown := make(map[string]bool)
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, fragment := range rewriteJSDuckLinks(p.doc, fragments, classes) {
			if warnings.Test(fragment) {
				continue
			}
			warnings.Add(fragment)
			result.MissingLinks++
			logger.Warn("missing link target", "class", p.class, "fragment", fragment)
		}
		normalizePre(p.doc)

		if err := b.indexPage(ctx, w, p, classes, unknown); err != nil {
			return nil, err
		}

		data, err := renderJSDuckPage(p.doc, stylesheet)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", p.class, err)
		}
		rel := gendocsets.DocumentPath(path.Join(jsduckHTMLDir, p.class+".html"))
		if err := b.Documents.WriteFile(ctx, rel, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.class, err)
		}
		result.Pages++
	}

	result.Symbols = w.count()

	for title := range unknown {
		result.UnknownSections = append(result.UnknownSections, title)
	}
	slices.Sort(result.UnknownSections)
	if len(result.UnknownSections) > 0 {
		logger.Warn("unknown member sections", "sections", result.UnknownSections)
	}

	return result, nil
}

// loadBundles decodes and parses output/*.js in parallel. Pages are
// returned in class name order.
func (b *JSDuckBuilder) loadBundles(ctx context.Context, corpusDir string) ([]*jsduckPage, error) {
	dir := filepath.Join(corpusDir, jsduckBundleDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gendocsets.Errorf(gendocsets.ENOTFOUND, "bundle directory %s not found", dir)
		}
		return nil, err
	}

	var classes []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".js") {
			continue
		}
		classes = append(classes, strings.TrimSuffix(e.Name(), ".js"))
	}
	if len(classes) == 0 {
		return nil, gendocsets.Errorf(gendocsets.ENOTFOUND, "no class bundles in %s", dir)
	}

	pages := make([]*jsduckPage, len(classes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(b.Concurrency))
	for i, class := range classes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, class+".js"))
			if err != nil {
				return err
			}
			bundle, err := b.Bundles.DecodeBundle(data)
			if err != nil {
				if gendocsets.ErrorCode(err) == gendocsets.EINVALID {
					return gendocsets.Errorf(gendocsets.EINVALID, "%s.js: %s", class, gendocsets.ErrorMessage(err))
				}
				return fmt.Errorf("%s.js: %w", class, err)
			}
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(repairSubtitles(bundle.HTML)))
			if err != nil {
				return gendocsets.Errorf(gendocsets.EINVALID, "failed to parse HTML of %s: %v", class, err)
			}
			pages[i] = &jsduckPage{class: class, doc: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// indexPage inserts the class row, then one row per member declared by the
// class itself. Inherited members are skipped but their declaring class
// must be part of the corpus.
func (b *JSDuckBuilder) indexPage(ctx context.Context, w *symbolWriter, p *jsduckPage, classes, unknown map[string]bool) error {
	page := path.Join(jsduckHTMLDir, p.class+".html")
	cls, err := w.create(ctx, gendocsets.TypeDashClass, p.class, page, nil)
	if err != nil {
		return err
	}

	p.doc.Find(".members-section").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		title := strings.TrimSpace(section.Find("h3").First().Text())
		typ, ok := jsduckSectionTypes[title]
		if !ok {
			unknown[title] = true
			typ = gendocsets.TypeUnknown
		}

		section.Find(".member").EachWithBreak(func(_ int, member *goquery.Selection) bool {
			if definedIn := member.Find(".defined-in").First(); definedIn.Length() > 0 {
				owner := strings.TrimSpace(definedIn.Text())
				if owner != p.class {
					if !classes[owner] {
						err = gendocsets.Errorf(gendocsets.EINVALID, "%s: member defined in unknown class %q", p.class, owner)
						return false
					}
					return true
				}
			}

			id, _ := member.Attr("id")
			if id == "" {
				err = gendocsets.Errorf(gendocsets.EINVALID, "%s: %s member without id", p.class, title)
				return false
			}
			name := strings.TrimSpace(member.ChildrenFiltered("div.title").ChildrenFiltered("a").First().Text())
			if name == "" {
				err = gendocsets.Errorf(gendocsets.EINVALID, "%s: member %s has no title", p.class, id)
				return false
			}

			_, err = w.create(ctx, typ, p.class+"."+name, page+"#"+id, &cls.ID)
			return err == nil
		})
		return err == nil
	})
	return err
}

// rewriteJSDuckLinks points in-app links at the generated pages and returns
// the fragments that could not be resolved, in document order.
func rewriteJSDuckLinks(doc *goquery.Document, fragments *gendocsets.FragmentIndex, classes map[string]bool) []string {
	var missing []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "source/") {
			a.SetAttr("href", "../"+href)
			return
		}
		if !strings.HasPrefix(href, "#") || strings.Contains(href, "/guide/") || strings.Contains(href, "/example") {
			return
		}

		fragment := strings.ReplaceAll(href, "#!/api/", "")
		if target, ok := fragments.Lookup(fragment); ok {
			a.SetAttr("href", target.Href())
			return
		}
		if target, ok := fragments.Lookup(strings.ReplaceAll(fragment, "property-", "cfg-")); ok {
			a.SetAttr("href", target.Href())
			return
		}
		switch {
		case fragment == "#":
			// Script-only controls.
			a.Remove()
		case classes[fragment]:
			a.SetAttr("href", fragment+".html")
		default:
			missing = append(missing, fragment)
		}
	})
	return missing
}

// normalizePre marks unstyled code blocks so the app stylesheet applies.
func normalizePre(doc *goquery.Document) {
	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		if class, _ := pre.Attr("class"); class == "" {
			pre.SetAttr("class", "notpretty")
		}
	})
}

// renderJSDuckPage moves the class documentation into the static page shell.
func renderJSDuckPage(doc *goquery.Document, stylesheet string) ([]byte, error) {
	shell, err := goquery.NewDocumentFromReader(strings.NewReader(jsduckShell))
	if err != nil {
		return nil, err
	}
	if stylesheet != "" {
		head := shell.Find("head")
		head.PrependHtml(`<link rel="stylesheet" type="text/css"/>`)
		head.Find("link").SetAttr("href", "../"+stylesheet)
	}
	shell.Find("div.x-panel-body").AppendSelection(doc.Find("body").Contents())

	var buf bytes.Buffer
	if err := html.Render(&buf, shell.Get(0)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func repairSubtitles(s string) string {
	return subtitleRe.ReplaceAllString(s, `<h4 class="members-subtitle">$1</h4>`)
}

// findStylesheet returns the corpus-relative path of the JSDuck app
// stylesheet, or "" if there is none.
func findStylesheet(corpusDir string) string {
	matches, _ := filepath.Glob(filepath.Join(corpusDir, "resources", "css", "app-*.css"))
	if len(matches) == 0 {
		return ""
	}
	return "resources/css/" + filepath.Base(matches[0])
}

func skipJSDuck(rel string, _ bool) bool {
	return jsduckExcluded[rel] || isBundleOutput(rel)
}
