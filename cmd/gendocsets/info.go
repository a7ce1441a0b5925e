package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/gendocsets/crawl"
	gdfs "github.com/fwojciec/gendocsets/fs"
	gdslog "github.com/fwojciec/gendocsets/slog"
	"github.com/fwojciec/gendocsets/sqlite"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	d, err := openDocset(deps, c.Docset)
	if err != nil {
		return err
	}
	defer d.DB.Close()

	symbols := gdslog.NewLoggingSymbolService(sqlite.NewSymbolService(d.DB), deps.Logger)
	counts, err := symbols.CountSymbolsByType(deps.Ctx)
	if err != nil {
		return err
	}
	digest, err := symbols.Digest(deps.Ctx)
	if err != nil {
		return err
	}

	meta := d.Docset
	fmt.Fprintf(deps.Stdout, "Name:        %s\n", meta.Name)
	fmt.Fprintf(deps.Stdout, "Identifier:  %s\n", meta.Identifier)
	fmt.Fprintf(deps.Stdout, "Platform:    %s\n", meta.PlatformFamily)
	if meta.Version != "" {
		fmt.Fprintf(deps.Stdout, "Version:     %s\n", meta.Version)
	}
	if len(meta.Keywords) > 0 {
		fmt.Fprintf(deps.Stdout, "Keywords:    %s\n", strings.Join(meta.Keywords, ", "))
	}
	if meta.IndexFilePath != "" {
		fmt.Fprintf(deps.Stdout, "Index file:  %s\n", meta.IndexFilePath)
	}
	fmt.Fprintf(deps.Stdout, "Format:      %s\n", d.DB.Format)
	if stat, err := os.Stat(gdfs.IndexPath(d.Dir)); err == nil {
		fmt.Fprintf(deps.Stdout, "Index size:  %s\n", crawl.FormatBytes(stat.Size()))
	}
	fmt.Fprintf(deps.Stdout, "Digest:      %s\n", digest)

	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Fprintf(deps.Stdout, "Symbols:     %d\n", total)
	fmt.Fprint(deps.Stdout, crawl.FormatCounts(counts))
	return nil
}
