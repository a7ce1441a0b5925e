package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/gendocsets"
	gdfs "github.com/fwojciec/gendocsets/fs"
	"github.com/fwojciec/gendocsets/goquery"
	gdslog "github.com/fwojciec/gendocsets/slog"
	"github.com/fwojciec/gendocsets/sqlite"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	d, err := openDocset(deps, c.Docset)
	if err != nil {
		return err
	}
	defer d.DB.Close()

	svc := gdslog.NewLoggingSearchService(sqlite.NewSearchService(d.DB, d.Docset.Name), deps.Logger)
	results, err := svc.Search(deps.Ctx, c.Name)
	if err != nil {
		return err
	}
	best, ok := bestMatch(results, c.Name)
	if !ok {
		return gendocsets.Errorf(gendocsets.ENOTFOUND, "symbol %q not found in %s", c.Name, d.Docset.Name)
	}

	page, err := gdfs.ReadPage(d.Dir, best.Path)
	if err != nil {
		return err
	}
	html, err := c.symbolHTML(deps, string(page), best.Path)
	if err != nil {
		return err
	}
	markdown, err := deps.Converter.Convert(html)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "# %s (%s)\n\n", qualifiedName(best), best.Type)
	fmt.Fprintln(deps.Stdout, markdown)
	fmt.Fprintf(deps.Stdout, "\nSource: %s\n", best.Path)

	if !c.Related {
		return nil
	}
	related, err := svc.Related(deps.Ctx, best.Path)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, "\nOn this page:")
	for _, r := range related {
		if r.Path == best.Path && r.Name == best.Name {
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %s (%s)\n", qualifiedName(r), r.Type)
	}
	return nil
}

// symbolHTML selects the documentation of the symbol at docPath: the
// element its fragment names, or the main content of the page when it has
// none. Pages the extractor rejects are shown whole.
func (c *ShowCmd) symbolHTML(deps *Dependencies, page, docPath string) (string, error) {
	_, fragment := gendocsets.SplitFragment(docPath)
	if fragment != "" {
		return goquery.ExtractFragment(page, fragment)
	}

	extractor, ok := deps.Extractors[c.Extractor]
	if !ok {
		return goquery.ExtractFragment(page, "")
	}
	result, err := extractor.Extract(page)
	if gendocsets.ErrorCode(err) == gendocsets.EINVALID {
		deps.Logger.Debug("main content extraction failed", "path", docPath, "err", err)
		return goquery.ExtractFragment(page, "")
	} else if err != nil {
		return "", err
	}
	if strings.TrimSpace(result.ContentHTML) == "" {
		return goquery.ExtractFragment(page, "")
	}
	return result.ContentHTML, nil
}

// bestMatch prefers a result whose display or qualified name equals name
// and otherwise takes the top ranked result.
func bestMatch(results []gendocsets.SearchResult, name string) (gendocsets.SearchResult, bool) {
	for _, r := range results {
		if r.Name == name || qualifiedName(r) == name {
			return r, true
		}
	}
	if len(results) == 0 {
		return gendocsets.SearchResult{}, false
	}
	return results[0], true
}

func qualifiedName(r gendocsets.SearchResult) string {
	if r.ParentName == "" {
		return r.Name
	}
	return r.ParentName + "." + r.Name
}
