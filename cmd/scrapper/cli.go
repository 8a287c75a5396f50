package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
	"github.com/AlexDevFx/LibraryScrapper/crawl"
	"github.com/AlexDevFx/LibraryScrapper/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB       *sqlite.DB
	Manifest scrapper.ManifestService
	Sitemaps scrapper.SitemapService
	Crawler  *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Mirror MirrorCmd `cmd:"" help:"Mirror a web site to a local directory"`
	Crawls CrawlsCmd `cmd:"" help:"List recorded crawl runs"`
	Files  FilesCmd  `cmd:"" help:"List files saved by a crawl run"`
}

// MirrorCmd is the "mirror" subcommand.
type MirrorCmd struct {
	URL         string        `arg:"" help:"Root URL to mirror"`
	Out         string        `short:"o" default:"./mirror" help:"Output directory (wiped before the crawl)"`
	Timeout     time.Duration `short:"t" default:"0" help:"Global deadline for the whole crawl (0 = none)"`
	Concurrency int           `short:"c" default:"0" help:"Bound on concurrent network operations (0 = unbounded)"`
	Sitemap     bool          `help:"Seed additional start pages from /sitemap.xml"`
	Quiet       bool          `short:"q" help:"Suppress per-file progress output"`
}

// CrawlsCmd is the "crawls" subcommand.
type CrawlsCmd struct {
	Limit int `default:"20" help:"Maximum number of crawls to list"`
}

// FilesCmd is the "files" subcommand.
type FilesCmd struct {
	Crawl string `help:"Crawl ID (defaults to the most recent crawl)"`
	Kind  string `help:"Filter by file kind (page or resource)"`
	Limit int    `default:"0" help:"Maximum number of files to list (0 = all)"`
}
