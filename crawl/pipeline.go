// Package crawl provides the price-crawl pipeline orchestration.
// It sequences fetching, element location, title matching and price
// resolution, and maps every run to a terminal outcome.
package crawl

import (
	"context"

	"github.com/fwojciec/pricewatch"
)

// Ensure Pipeline implements pricewatch.Crawler at compile time.
var _ pricewatch.Crawler = (*Pipeline)(nil)

// Pipeline runs one crawl invocation: fetch, locate, match, resolve.
// Each invocation owns its parsed document and candidate set; no state is
// shared across calls, so a Pipeline is safe for concurrent use as long as
// its collaborators are.
type Pipeline struct {
	Fetcher  pricewatch.Fetcher
	Parser   pricewatch.DocumentParser
	Matcher  pricewatch.TitleMatcher
	Resolver pricewatch.PriceResolver
}

// Crawl executes the pipeline for req.
//
// Fetch failures, absent candidates, unmatched titles and unresolvable
// prices are expected outcomes of web content variability and are reported
// through the returned Outcome. Only configuration errors (invalid
// request, unsupported currency) are returned as errors.
func (p *Pipeline) Crawl(ctx context.Context, req pricewatch.Request) (*pricewatch.Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := p.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return pricewatch.FetchFailed(pricewatch.ErrorMessage(err)), nil
	}

	doc, err := p.Parser.Parse(body)
	if err != nil {
		return nil, err
	}

	candidates := locate(doc, req.Locator)
	switch len(candidates) {
	case 0:
		return pricewatch.NotFound(), nil
	case 1:
		return p.resolve(candidates[0], req.Currency)
	}

	// Multiple candidates need a title to disambiguate.
	if req.Title == "" {
		return pricewatch.Ambiguous(len(candidates)), nil
	}
	matched := p.Matcher.FindCorrectElement(candidates, req.Title)
	if matched == nil {
		return pricewatch.Ambiguous(len(candidates)), nil
	}
	return p.resolve(matched, req.Currency)
}

func (p *Pipeline) resolve(el pricewatch.Element, currency pricewatch.Currency) (*pricewatch.Outcome, error) {
	token, err := p.Resolver.Resolve(el, currency)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return pricewatch.NotFound(), nil
	}
	return pricewatch.SinglePrice(token.Value), nil
}

func locate(doc pricewatch.Document, loc pricewatch.Locator) []pricewatch.Element {
	switch loc.Kind {
	case pricewatch.LocatorID:
		return doc.FindByID(loc.Value)
	case pricewatch.LocatorClass:
		return doc.FindByClass(loc.Value)
	}
	return nil
}
