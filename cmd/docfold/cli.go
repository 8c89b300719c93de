package main

import (
	"context"
	"io"
	"time"

	"github.com/docfold/docfold"
)

// Dependencies holds services and configuration for command execution.
// Nil service fields are wired with real implementations by the command
// that needs them; tests inject mocks instead.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher   docfold.Fetcher
	Extractor docfold.Extractor
	Converter docfold.Converter
	Links     docfold.LinkExtractor
	Sitemaps  docfold.SeedDiscoverer
	Archive   docfold.Archive

	// OpenArchive opens the archive at a path when Archive is nil.
	OpenArchive func(path string) (docfold.Archive, func() error, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl a documentation site into one Markdown document"`
	Runs   RunsCmd   `cmd:"" help:"List archived crawl runs"`
	Export ExportCmd `cmd:"" help:"Re-export an archived run as a Markdown document"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Seed URL; the crawl is confined to its path prefix"`
	Output      string        `short:"o" default:"docs.md" help:"Output file path"`
	Title       string        `short:"t" help:"Document title (defaults to the seed URL)"`
	MaxDepth    int           `default:"-1" help:"Link-distance ceiling (-1 for unlimited, 0 for seed only)"`
	MaxPages    int           `default:"1000" help:"Page count ceiling"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Timeout     time.Duration `default:"10s" help:"Per-request fetch timeout"`
	Retries     int           `default:"3" help:"Fetch attempts per page before recording a failure"`
	RPS         float64       `default:"2" help:"Requests per second per domain"`
	KeepQuery   bool          `help:"Treat query strings as part of page identity"`
	Browser     bool          `help:"Render pages in a headless browser (requires Chrome)"`
	Sitemap     bool          `help:"Pre-seed the crawl from the site's sitemaps"`
	Archive     string        `help:"Also record the run in a SQLite archive at this path"`
	Verbose     bool          `short:"v" help:"Log each fetch"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Archive string `default:"docfold.db" help:"Archive database path"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	RunID   string `arg:"" name:"run" help:"Run ID to export"`
	Archive string `default:"docfold.db" help:"Archive database path"`
	Output  string `short:"o" default:"docs.md" help:"Output file path"`
	Title   string `short:"t" help:"Document title (defaults to the run's seed URL)"`
}
