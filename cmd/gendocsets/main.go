package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/etree"
	"github.com/fwojciec/gendocsets/gjson"
	"github.com/fwojciec/gendocsets/htmltomarkdown"
	"github.com/fwojciec/gendocsets/readability"
	"github.com/fwojciec/gendocsets/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Logger replaces the logger configured by the global flags when set.
	Logger *slog.Logger
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Errors are reported on
// stderr as "error: <message>" and returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
		}
	}()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gendocsets"),
		kong.Description("Generate Dash/Zeal docsets from documentation corpora and search them"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gendocsets --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = m.Logger
	if deps.Logger == nil {
		deps.Logger = newLogger(stderr, cli.Verbose, cli.LogFormat)
	}
	deps.Metadata = etree.NewCodec()
	deps.Bundles = gjson.NewDecoder()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractors = map[string]gendocsets.Extractor{
		"trafilatura": trafilatura.NewExtractor(),
		"readability": readability.NewExtractor(),
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text or JSON logger writing to w. Debug records are
// kept only when verbose is set.
func newLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// errorMessage returns the message of an application error, or the full
// error text for anything else.
func errorMessage(err error) string {
	if gendocsets.ErrorCode(err) == gendocsets.EINTERNAL {
		return err.Error()
	}
	return gendocsets.ErrorMessage(err)
}
