package mock

import (
	"context"

	"github.com/fwojciec/pricewatch"
)

var (
	_ pricewatch.TitleMatcher  = (*TitleMatcher)(nil)
	_ pricewatch.PriceResolver = (*PriceResolver)(nil)
	_ pricewatch.Crawler       = (*Crawler)(nil)
	_ pricewatch.DomainLimiter = (*DomainLimiter)(nil)
)

// TitleMatcher is a mock implementation of pricewatch.TitleMatcher.
type TitleMatcher struct {
	FindCorrectElementFn func(candidates []pricewatch.Element, title string) pricewatch.Element
}

func (m *TitleMatcher) FindCorrectElement(candidates []pricewatch.Element, title string) pricewatch.Element {
	return m.FindCorrectElementFn(candidates, title)
}

// PriceResolver is a mock implementation of pricewatch.PriceResolver.
type PriceResolver struct {
	ResolveFn func(el pricewatch.Element, currency pricewatch.Currency) (*pricewatch.PriceToken, error)
}

func (r *PriceResolver) Resolve(el pricewatch.Element, currency pricewatch.Currency) (*pricewatch.PriceToken, error) {
	return r.ResolveFn(el, currency)
}

// Crawler is a mock implementation of pricewatch.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, req pricewatch.Request) (*pricewatch.Outcome, error)
}

func (c *Crawler) Crawl(ctx context.Context, req pricewatch.Request) (*pricewatch.Outcome, error) {
	return c.CrawlFn(ctx, req)
}

// DomainLimiter is a mock implementation of pricewatch.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
