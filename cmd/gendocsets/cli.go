package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/gendocsets"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Metadata  gendocsets.MetadataCodec
	Bundles   gendocsets.BundleDecoder
	Converter gendocsets.Converter

	// Extractors selects page content for symbols without a fragment,
	// keyed by the show command's --extractor value.
	Extractors map[string]gendocsets.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log output format (text, json)"`

	JSDuck JSDuckCmd `cmd:"" name:"jsduck" help:"Build a docset from JSDuck output (ExtJS, Sencha Touch)"`
	Sphinx SphinxCmd `cmd:"" help:"Build a docset from Sphinx generated Python documentation"`
	Qt     QtCmd     `cmd:"" help:"Build a docset from the Qt reference documentation"`
	Search SearchCmd `cmd:"" help:"Search symbols across docsets"`
	Show   ShowCmd   `cmd:"" help:"Print the documentation of a symbol as Markdown"`
	Info   InfoCmd   `cmd:"" help:"Show docset metadata and index statistics"`
}

// BuildFlags are shared by the build commands.
type BuildFlags struct {
	Corpus      string `arg:"" help:"Documentation corpus directory"`
	Name        string `short:"n" help:"Docset name"`
	Out         string `short:"o" env:"GENDOCSETS_OUT" default:"." help:"Output directory for the .docset bundle"`
	Icon        string `help:"PNG icon copied into the bundle"`
	Manifest    string `short:"m" help:"YAML manifest with docset metadata"`
	Concurrency int    `short:"c" default:"8" help:"Concurrent page parsing limit"`
}

// JSDuckCmd is the "jsduck" subcommand.
type JSDuckCmd struct {
	BuildFlags `embed:""`
}

// SphinxCmd is the "sphinx" subcommand.
type SphinxCmd struct {
	BuildFlags `embed:""`
}

// QtCmd is the "qt" subcommand.
type QtCmd struct {
	BuildFlags `embed:""`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string   `arg:"" help:"Search query, optionally prefixed with docset keywords (e.g. 'py:split')"`
	Docsets []string `name:"docset" short:"d" env:"GENDOCSETS_DOCSETS" required:"" help:"Docset bundle to search (repeatable)"`
	Limit   int      `short:"l" default:"20" help:"Maximum number of results"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Docset    string `arg:"" help:"Docset bundle"`
	Name      string `arg:"" help:"Symbol name"`
	Related   bool   `short:"r" help:"List the other symbols documented on the same page"`
	Extractor string `enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor for whole-page symbols (trafilatura, readability)"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Docset string `arg:"" help:"Docset bundle"`
}
