package pricewatch

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered shop pages.
type Fetcher interface {
	// Fetch issues a single GET request and returns the raw response body.
	// Transport failures and non-2xx statuses are returned as errors with
	// code EUNAVAILABLE; no retry is attempted at this layer.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter rate-limits requests on a per-domain basis.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
