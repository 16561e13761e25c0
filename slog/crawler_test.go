package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/mock"
	pwslog "github.com/fwojciec/pricewatch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("logs status and value for single-price outcomes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Crawler{
			CrawlFn: func(ctx context.Context, req pricewatch.Request) (*pricewatch.Outcome, error) {
				return pricewatch.SinglePrice(19.99), nil
			},
		}

		crawler := pwslog.NewLoggingCrawler(inner, logger)
		outcome, err := crawler.Crawl(context.Background(), pricewatch.Request{
			URL:      "https://shop.example.com/item",
			Locator:  pricewatch.Locator{Kind: pricewatch.LocatorID, Value: "price"},
			Currency: pricewatch.CurrencyUSD,
		})

		require.NoError(t, err)
		assert.Equal(t, pricewatch.StatusSingle, outcome.Status)
		output := buf.String()
		assert.Contains(t, output, "crawl")
		assert.Contains(t, output, "status=single")
		assert.Contains(t, output, "value=19.99")
		assert.Contains(t, output, "locator=id=price")
	})

	t.Run("logs fetch_failed outcomes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Crawler{
			CrawlFn: func(ctx context.Context, req pricewatch.Request) (*pricewatch.Outcome, error) {
				return pricewatch.FetchFailed("HTTP 404"), nil
			},
		}

		crawler := pwslog.NewLoggingCrawler(inner, logger)
		_, err := crawler.Crawl(context.Background(), pricewatch.Request{
			URL:      "https://shop.example.com/item",
			Locator:  pricewatch.Locator{Kind: pricewatch.LocatorID, Value: "price"},
			Currency: pricewatch.CurrencyUSD,
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "status=fetch_failed")
	})
}
