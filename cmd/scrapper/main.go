package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/AlexDevFx/LibraryScrapper/crawl"
	"github.com/AlexDevFx/LibraryScrapper/fs"
	"github.com/AlexDevFx/LibraryScrapper/goquery"
	scraphttp "github.com/AlexDevFx/LibraryScrapper/http"
	scrapslog "github.com/AlexDevFx/LibraryScrapper/slog"
	"github.com/AlexDevFx/LibraryScrapper/sqlite"
)

func main() {
	// An interrupt cancels the shared context; the crawl stops
	// cooperatively and keeps whatever was saved so far.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Manifest database path. Set before calling Run().
	DBPath string

	// SQLite database used by the manifest service.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrapper"),
		kong.Description("Mirror a web site to a local directory tree."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrapper --help' to see available commands")
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := kongCtx.Command()
	switch {
	case cmd == "mirror <url>":
		m.wireMirror(cli, deps)
	case cmd == "crawls" || cmd == "files":
		// Listing commands require the manifest database.
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set SCRAPPER_DB to use a different manifest path")
			return fmt.Errorf("failed to open manifest at %q: %w", m.DBPath, err)
		}
		deps.DB = m.DB
		deps.Manifest = sqlite.NewManifestService(m.DB)
	}

	return kongCtx.Run(deps)
}

// wireMirror builds the crawl dependencies for the mirror command.
// The manifest is best-effort: a failure to open the database downgrades
// the run to mirroring without bookkeeping.
func (m *Main) wireMirror(cli *CLI, deps *Dependencies) {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		deps.Logger.Warn("manifest unavailable, continuing without it", "path", m.DBPath, "error", err)
		m.DB = nil
	} else {
		deps.DB = m.DB
		deps.Manifest = sqlite.NewManifestService(m.DB)
	}

	fetcher := scrapslog.NewLoggingFetcher(scraphttp.NewFetcher(), deps.Logger)

	deps.Sitemaps = scraphttp.NewSitemapService(nil)
	deps.Crawler = &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   goquery.NewExtractor(),
		Store:       fs.NewStore(),
		Manifest:    deps.Manifest,
		Logger:      deps.Logger,
		Concurrency: cli.Mirror.Concurrency,
	}
}

func defaultDBPath() string {
	if path := os.Getenv("SCRAPPER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scrapper.db"
	}
	dir := filepath.Join(home, ".scrapper")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "scrapper.db")
}
