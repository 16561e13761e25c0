package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pricewatch/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "shop.example.com"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second request to the same domain is throttled", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "shop.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "shop.example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("different domains do not share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0.1) // one request per 10s per domain

		require.NoError(t, limiter.Wait(context.Background(), "shop.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "shop.example.jp"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("wait honors context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0.01)

		require.NoError(t, limiter.Wait(context.Background(), "shop.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "shop.example.com")
		require.Error(t, err)
	})
}
