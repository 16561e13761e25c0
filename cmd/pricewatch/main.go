package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/check"
	"github.com/fwojciec/pricewatch/crawl"
	"github.com/fwojciec/pricewatch/goquery"
	pwhttp "github.com/fwojciec/pricewatch/http"
	"github.com/fwojciec/pricewatch/match"
	"github.com/fwojciec/pricewatch/price"
	"github.com/fwojciec/pricewatch/rod"
	pwslog "github.com/fwojciec/pricewatch/slog"
	"github.com/fwojciec/pricewatch/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// Load .env if present; flags and real env vars take precedence.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	WatchService pricewatch.WatchService
	CheckService pricewatch.CheckService
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
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pricewatch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pricewatch --help' to see available commands")
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

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRICEWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.WatchService = sqlite.NewWatchService(m.DB)
	m.CheckService = sqlite.NewCheckService(m.DB)
	deps.DB = m.DB
	deps.Watches = m.WatchService
	deps.Checks = m.CheckService

	// The check and run commands need a crawl pipeline; the watch management
	// commands do not, and must not pay for a browser launch.
	if cmd == "check" || cmd == "run" {
		render := cli.Check.Render || cli.Run.Render
		verbose := cmd == "run" || cli.Check.Verbose

		fetcher, err := newFetcher(render, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		if cmd == "run" {
			// Smooth over transient shop hiccups between scheduled runs and
			// record a content hash per fetched page.
			fetcher = crawl.NewRetryFetcher(fetcher, nil, nil)
			deps.Hashes = check.NewHashingFetcher(fetcher)
			fetcher = deps.Hashes
		}
		if verbose {
			fetcher = pwslog.NewLoggingFetcher(fetcher, deps.Logger)
		}

		var crawler pricewatch.Crawler = &crawl.Pipeline{
			Fetcher:  fetcher,
			Parser:   goquery.NewParser(),
			Matcher:  match.NewMatcher(),
			Resolver: price.NewResolver(),
		}
		if verbose {
			crawler = pwslog.NewLoggingCrawler(crawler, deps.Logger)
		}
		deps.Crawler = crawler
	}

	return kongCtx.Run(deps)
}

// newFetcher builds the page fetcher, rendering with headless Chrome when
// requested.
func newFetcher(render bool, stderr io.Writer) (pricewatch.Fetcher, error) {
	if !render {
		return pwhttp.NewFetcher(), nil
	}
	fetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

func defaultDBPath() string {
	if path := os.Getenv("PRICEWATCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pricewatch.db"
	}
	dir := filepath.Join(home, ".pricewatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pricewatch.db")
}
