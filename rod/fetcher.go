// Package rod provides a Fetcher that renders pages with headless Chrome,
// for shops that build their price markup with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pricewatch"
	pwhttp "github.com/fwojciec/pricewatch/http"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render. Rendering is slower than
// a plain GET, so the default is looser than the HTTP fetcher's.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements pricewatch.Fetcher at compile time.
var _ pricewatch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The underlying browser is recycled periodically to keep memory bounded.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithFetchTimeout sets the per-fetch timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) error {
		f.timeout = d
		return nil
	}
}

// WithMaxPages sets the number of pages rendered before the browser is
// recycled.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) error {
		manager, err := NewBrowserManager(WithManagerMaxPages(n))
		if err != nil {
			return err
		}
		_ = f.manager.Close()
		f.manager = manager
		return nil
	}
}

// NewFetcher creates a Fetcher backed by a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{manager: manager, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			_ = f.manager.Close()
			return nil, err
		}
	}
	return f, nil
}

// Fetch navigates to the URL, waits for the page to load and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.closed.Load() {
		return nil, pricewatch.Errorf(pricewatch.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, pricewatch.Errorf(pricewatch.EUNAVAILABLE, "failed to open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	// Shops vary markup by user agent; present the same one as the HTTP
	// fetcher so both paths see the same page.
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: pwhttp.DefaultUserAgent,
	}); err != nil {
		return nil, pricewatch.Errorf(pricewatch.EUNAVAILABLE, "failed to set user agent: %v", err)
	}

	if err := page.Navigate(url); err != nil {
		return nil, pricewatch.Errorf(pricewatch.EUNAVAILABLE, "failed to navigate to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, pricewatch.Errorf(pricewatch.EUNAVAILABLE, "failed to load %s: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, pricewatch.Errorf(pricewatch.EUNAVAILABLE, "failed to read rendered HTML: %v", err)
	}

	f.manager.IncrementPageCount()
	return []byte(html), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
