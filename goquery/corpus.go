// Package goquery implements the documentation crawlers on top of goquery:
// one Builder per documentation generator.
package goquery

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gendocsets"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel page parsing when a builder does not
// set one.
const DefaultConcurrency = 8

// readDocument parses the HTML file at rel inside corpusDir.
func readDocument(corpusDir, rel string) (*goquery.Document, error) {
	f, err := os.Open(filepath.Join(corpusDir, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gendocsets.Errorf(gendocsets.ENOTFOUND, "corpus file %s not found", rel)
		}
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "failed to parse %s: %v", rel, err)
	}
	return doc, nil
}

// parseAll parses the files at rels concurrently. The result is indexed
// like rels.
func parseAll(ctx context.Context, concurrency int, corpusDir string, rels []string) ([]*goquery.Document, error) {
	docs := make([]*goquery.Document, len(rels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(concurrency))
	for i, rel := range rels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := readDocument(corpusDir, rel)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func limit(concurrency int) int {
	if concurrency <= 0 {
		return DefaultConcurrency
	}
	return concurrency
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// ownText returns the text of sel's leading text nodes, before its first
// child element.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				break
			}
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// stripParentDirs removes every "../" from an href, mapping links written
// relative to a subdirectory onto corpus-root paths.
func stripParentDirs(href string) string {
	return strings.ReplaceAll(href, "../", "")
}

// isBundleOutput reports whether a top-level corpus entry is a docset
// bundle or a staging directory, which are never copied into Documents.
func isBundleOutput(rel string) bool {
	if strings.Contains(rel, "/") {
		return false
	}
	return strings.HasSuffix(rel, gendocsets.BundleExt) ||
		(strings.Contains(rel, gendocsets.BundleExt+".") && strings.HasSuffix(rel, ".tmp"))
}

// fileExists reports whether rel names a regular file inside corpusDir.
func fileExists(corpusDir, rel string) bool {
	info, err := os.Stat(filepath.Join(corpusDir, filepath.FromSlash(rel)))
	return err == nil && info.Mode().IsRegular()
}

// symbolWriter inserts the symbols of one build and counts the distinct
// rows it produced. A duplicate comes back with the ID of the existing row
// and is not counted again.
type symbolWriter struct {
	symbols gendocsets.SymbolService
	ids     map[int64]struct{}
}

func newSymbolWriter(symbols gendocsets.SymbolService) *symbolWriter {
	return &symbolWriter{symbols: symbols, ids: make(map[int64]struct{})}
}

// create inserts a symbol and returns it with its ID set.
func (w *symbolWriter) create(ctx context.Context, typ, name, path string, parent *int64) (*gendocsets.Symbol, error) {
	sym := &gendocsets.Symbol{Type: typ, Name: name, Path: path, ParentID: parent}
	if err := w.symbols.CreateSymbol(ctx, sym); err != nil {
		return nil, err
	}
	w.ids[sym.ID] = struct{}{}
	return sym, nil
}

// count returns the number of distinct rows written so far.
func (w *symbolWriter) count() int {
	return len(w.ids)
}

// keySet is an exact gendocsets.KeyFilter, used when no filter is injected.
type keySet map[string]struct{}

func (s keySet) Add(key string) { s[key] = struct{}{} }

func (s keySet) Test(key string) bool {
	_, ok := s[key]
	return ok
}
