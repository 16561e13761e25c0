package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/pricewatch"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts to fetch a URL with exponential backoff retry
// logic. It retries up to 3 times (4 total attempts) with delays of 1s,
// 2s, 4s. The logger function, if provided, is called for each retry
// attempt.
//
// The core pipeline never retries; this helper belongs to callers such as
// the scheduled checker that want transient transport failures smoothed
// over.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) ([]byte, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
// This is useful for testing without waiting for real delays.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) ([]byte, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

// Ensure RetryFetcher implements pricewatch.Fetcher at compile time.
var _ pricewatch.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher decorates a Fetcher with FetchWithRetry semantics so retry
// policy can be composed where the caller wants it.
type RetryFetcher struct {
	next   pricewatch.Fetcher
	delays []time.Duration
	logger LogFunc
}

// NewRetryFetcher creates a RetryFetcher around next. A nil delays slice
// uses DefaultRetryDelays; logger may be nil.
func NewRetryFetcher(next pricewatch.Fetcher, delays []time.Duration, logger LogFunc) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped fetcher with backoff retries.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return FetchWithRetryDelays(ctx, url, f.next.Fetch, f.logger, f.delays)
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
