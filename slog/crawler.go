package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pricewatch"
)

// Ensure LoggingCrawler implements pricewatch.Crawler.
var _ pricewatch.Crawler = (*LoggingCrawler)(nil)

// LoggingCrawler wraps a Crawler with logging of each crawl outcome.
type LoggingCrawler struct {
	next   pricewatch.Crawler
	logger *slog.Logger
}

// NewLoggingCrawler creates a new LoggingCrawler.
func NewLoggingCrawler(next pricewatch.Crawler, logger *slog.Logger) *LoggingCrawler {
	return &LoggingCrawler{next: next, logger: logger}
}

// Crawl delegates to the wrapped crawler and logs the terminal outcome.
func (c *LoggingCrawler) Crawl(ctx context.Context, req pricewatch.Request) (outcome *pricewatch.Outcome, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"locator", string(req.Locator.Kind) + "=" + req.Locator.Value,
			"duration", time.Since(begin),
			"err", err,
		}
		if outcome != nil {
			attrs = append(attrs, "status", string(outcome.Status))
			if outcome.Status == pricewatch.StatusSingle {
				attrs = append(attrs, "value", outcome.Value)
			}
		}
		c.logger.Info("crawl", attrs...)
	}(time.Now())
	return c.next.Crawl(ctx, req)
}
