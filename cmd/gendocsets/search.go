package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/gendocsets"
	gdslog "github.com/fwojciec/gendocsets/slog"
	"github.com/fwojciec/gendocsets/sqlite"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	q := gendocsets.ParseSearchQuery(c.Query)
	if q.Query == "" {
		return gendocsets.Errorf(gendocsets.EINVALID, "empty search query")
	}

	var results []gendocsets.SearchResult
	searched := 0
	for _, path := range c.Docsets {
		d, err := openDocset(deps, path)
		if err != nil {
			return err
		}
		if !q.MatchesDocset(d.Docset.AllKeywords()) {
			_ = d.DB.Close()
			continue
		}
		searched++

		svc := gdslog.NewLoggingSearchService(sqlite.NewSearchService(d.DB, d.Docset.Name), deps.Logger)
		found, err := svc.Search(deps.Ctx, q.Query)
		_ = d.DB.Close()
		if err != nil {
			return err
		}
		results = append(results, found...)
	}

	if searched == 0 {
		return gendocsets.Errorf(gendocsets.ENOTFOUND, "no docset matches keywords %v", q.Keywords)
	}
	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No symbols match %q.\n", q.Query)
		return nil
	}

	gendocsets.SortResults(results)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range results {
		name := r.Name
		if r.ParentName != "" {
			name = r.ParentName + "." + r.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, r.Type, r.Docset, r.Path)
	}
	return w.Flush()
}
