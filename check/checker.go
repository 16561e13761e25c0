// Package check runs watches through the crawl pipeline on a schedule and
// records the results.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pricewatch"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of watches checked in parallel per run.
const DefaultConcurrency = 4

// Ensure HashingFetcher implements pricewatch.Fetcher at compile time.
var _ pricewatch.Fetcher = (*HashingFetcher)(nil)

// HashingFetcher decorates a Fetcher and records a content hash of each
// fetched body, keyed by URL. The checker uses the hashes to detect page
// changes between runs without storing page bodies.
type HashingFetcher struct {
	next pricewatch.Fetcher

	mu     sync.Mutex
	hashes map[string]string
}

// NewHashingFetcher creates a HashingFetcher around next.
func NewHashingFetcher(next pricewatch.Fetcher) *HashingFetcher {
	return &HashingFetcher{next: next, hashes: make(map[string]string)}
}

// Fetch delegates to the wrapped fetcher and records the body hash.
func (f *HashingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.hashes[url] = fmt.Sprintf("%016x", xxhash.Sum64(body))
	f.mu.Unlock()

	return body, nil
}

// Close delegates to the wrapped fetcher.
func (f *HashingFetcher) Close() error {
	return f.next.Close()
}

// Hash returns the content hash recorded for the most recent fetch of url.
func (f *HashingFetcher) Hash(url string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hashes[url]
	return h, ok
}

// Checker runs all stored watches through a Crawler and records a PriceCheck
// per watch per run. Watches are checked concurrently up to a bound, with
// optional per-domain rate limiting for politeness.
type Checker struct {
	crawler pricewatch.Crawler
	watches pricewatch.WatchService
	checks  pricewatch.CheckService

	limiter     pricewatch.DomainLimiter
	hashes      *HashingFetcher
	logger      *slog.Logger
	concurrency int

	cron *cron.Cron
}

// Option configures a Checker.
type Option func(*Checker)

// WithConcurrency sets the number of watches checked in parallel.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithDomainLimiter sets a per-domain rate limiter applied before each fetch.
func WithDomainLimiter(limiter pricewatch.DomainLimiter) Option {
	return func(c *Checker) {
		c.limiter = limiter
	}
}

// WithContentHashes wires the HashingFetcher whose recorded hashes are
// attached to each check. The same instance must sit inside the crawler's
// fetch path for the hashes to correspond to the checked pages.
func WithContentHashes(hashes *HashingFetcher) Option {
	return func(c *Checker) {
		c.hashes = hashes
	}
}

// WithLogger sets the logger for per-watch results and errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker.
func NewChecker(crawler pricewatch.Crawler, watches pricewatch.WatchService, checks pricewatch.CheckService, opts ...Option) *Checker {
	c := &Checker{
		crawler:     crawler,
		watches:     watches,
		checks:      checks,
		logger:      slog.Default(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunOnce checks every stored watch once. A failing watch is logged and
// recorded but does not stop the run; only listing the watches can fail it.
func (c *Checker) RunOnce(ctx context.Context) error {
	watches, err := c.watches.FindWatches(ctx, pricewatch.WatchFilter{})
	if err != nil {
		return fmt.Errorf("failed to list watches: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, watch := range watches {
		g.Go(func() error {
			if err := c.checkWatch(ctx, watch); err != nil {
				c.logger.Error("check failed",
					slog.String("watch_id", watch.ID),
					slog.String("url", watch.URL),
					slog.Any("error", err))
			}
			return nil
		})
	}

	return g.Wait()
}

// checkWatch runs one watch through the crawler, records the check and
// updates the watch's last price when a single price was resolved.
func (c *Checker) checkWatch(ctx context.Context, watch *pricewatch.Watch) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, domainOf(watch.URL)); err != nil {
			return err
		}
	}

	start := time.Now()
	outcome, err := c.crawler.Crawl(ctx, watch.Request())
	if err != nil {
		return err
	}

	check := &pricewatch.PriceCheck{
		WatchID:   watch.ID,
		Status:    outcome.Status,
		Duration:  time.Since(start),
		CheckedAt: time.Now().UTC(),
	}
	if outcome.Status == pricewatch.StatusSingle {
		value := outcome.Value
		check.Value = &value
	}
	if c.hashes != nil {
		if h, ok := c.hashes.Hash(watch.URL); ok {
			check.ContentHash = h
		}
	}

	if err := c.checks.CreateCheck(ctx, check); err != nil {
		return err
	}

	c.logger.Info("watch checked",
		slog.String("watch_id", watch.ID),
		slog.String("url", watch.URL),
		slog.String("status", string(outcome.Status)),
		slog.Duration("duration", check.Duration))

	if outcome.Status != pricewatch.StatusSingle {
		return nil
	}

	value := outcome.Value
	_, err = c.watches.UpdateWatch(ctx, watch.ID, pricewatch.WatchUpdate{LastPrice: &value})
	return err
}

// Start begins running checks on the given cron schedule. The schedule uses
// the standard five-field cron format, e.g. "*/30 * * * *" for every thirty
// minutes. Start returns immediately; call Stop to shut the scheduler down.
func (c *Checker) Start(schedule string) error {
	if c.cron != nil {
		return pricewatch.Errorf(pricewatch.EINTERNAL, "checker already started")
	}

	runner := cron.New()
	_, err := runner.AddFunc(schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.logger.Error("scheduled run failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return pricewatch.Errorf(pricewatch.EINVALID, "invalid schedule %q: %v", schedule, err)
	}

	c.cron = runner
	runner.Start()
	return nil
}

// Stop shuts the scheduler down and waits for any in-flight run to finish.
func (c *Checker) Stop() {
	if c.cron == nil {
		return
	}
	<-c.cron.Stop().Done()
	c.cron = nil
}

// domainOf extracts the host part of a URL for rate limiting. Unparseable
// URLs fall back to the raw string so they still share one bucket.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
