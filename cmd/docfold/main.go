// Command docfold crawls a documentation website confined to a URL path
// prefix and folds it into a single ordered Markdown document.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/docfold/docfold"
	"github.com/docfold/docfold/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Overrides for end-to-end testing. When nil, Run wires the real
	// implementations based on the parsed flags.
	Fetcher   docfold.Fetcher
	Extractor docfold.Extractor
	Converter docfold.Converter
	Links     docfold.LinkExtractor
	Sitemaps  docfold.SeedDiscoverer
	Archive   docfold.Archive
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Fetcher:   m.Fetcher,
		Extractor: m.Extractor,
		Converter: m.Converter,
		Links:     m.Links,
		Sitemaps:  m.Sitemaps,
		Archive:   m.Archive,
	}

	if deps.Archive == nil {
		deps.OpenArchive = func(path string) (docfold.Archive, func() error, error) {
			db := sqlite.NewDB(path)
			if err := db.Open(); err != nil {
				return nil, nil, fmt.Errorf("failed to open archive at %q: %w", path, err)
			}
			return sqlite.NewArchive(db), db.Close, nil
		}
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docfold"),
		kong.Description("Fold a documentation site into one Markdown document."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docfold --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}
