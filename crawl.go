package pricewatch

import "context"

// LocatorKind selects how candidate elements are shortlisted.
type LocatorKind string

// Locator kinds.
const (
	LocatorID    LocatorKind = "id"
	LocatorClass LocatorKind = "class"
)

// Locator is an id- or class-based DOM query used to shortlist elements
// before title matching.
type Locator struct {
	Kind  LocatorKind `json:"kind"`
	Value string      `json:"value"`
}

// Validate returns an error if the locator is malformed.
func (l Locator) Validate() error {
	if l.Kind != LocatorID && l.Kind != LocatorClass {
		return Errorf(EINVALID, "unsupported locator kind %q", l.Kind)
	}
	if l.Value == "" {
		return Errorf(EINVALID, "locator value required")
	}
	return nil
}

// Currency identifies the currency a page denominates its prices in.
// The set is closed: resolving a price for a currency outside it is a
// caller bug, not a crawl outcome.
type Currency string

// Supported currencies. CurrencyUnknown is only ever a parse result.
const (
	CurrencyUnknown Currency = "unknown"
	CurrencyYen     Currency = "yen"
	CurrencyUSD     Currency = "usd"
)

// ParseCurrency maps user-supplied currency spellings to a Currency.
func ParseCurrency(s string) (Currency, error) {
	switch s {
	case "yen", "jpy", "¥", "円":
		return CurrencyYen, nil
	case "usd", "dollar", "$":
		return CurrencyUSD, nil
	}
	return CurrencyUnknown, Errorf(EINVALID, "unsupported currency %q", s)
}

// PriceToken is a numeric token whose adjacency to a currency glyph
// licenses its interpretation as a price.
type PriceToken struct {
	Raw      string   `json:"raw"`
	Value    float64  `json:"value"`
	Currency Currency `json:"currency"`
}

// MatchCandidate scores an element's text similarity to a target title.
// A distance of 0 means exact text equality; distances are never negative.
type MatchCandidate struct {
	Element  Element
	Distance int
}

// TitleMatcher disambiguates among candidate elements by locating, for each
// candidate, the DOM neighborhood most likely to contain a known product
// title.
type TitleMatcher interface {
	// FindCorrectElement returns the first candidate whose neighborhood
	// contains a close match for title, or nil if no candidate does.
	// An unmatched title is a normal business outcome, not an error.
	FindCorrectElement(candidates []Element, title string) Element
}

// PriceResolver extracts a currency-tagged number from a matched element.
type PriceResolver interface {
	// Resolve returns the price token found in el for the given currency.
	// A nil token with a nil error means no currency-tagged number was
	// found. An unsupported currency returns an EINVALID error.
	Resolve(el Element, currency Currency) (*PriceToken, error)
}

// Request describes a single crawl: where to look and what to look for.
type Request struct {
	URL      string   `json:"url"`
	Locator  Locator  `json:"locator"`
	Title    string   `json:"title,omitempty"`
	Currency Currency `json:"currency"`
}

// Validate returns an error if the request contains invalid fields.
func (r Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "request URL required")
	}
	if err := r.Locator.Validate(); err != nil {
		return err
	}
	if r.Currency != CurrencyYen && r.Currency != CurrencyUSD {
		return Errorf(EINVALID, "unsupported currency %q", r.Currency)
	}
	return nil
}

// Status classifies the terminal state of a crawl.
type Status string

// Crawl outcome statuses.
const (
	StatusSingle      Status = "single"
	StatusAmbiguous   Status = "ambiguous"
	StatusNotFound    Status = "not_found"
	StatusFetchFailed Status = "fetch_failed"
)

// Outcome is the terminal result of one crawl invocation.
// Value is set only for StatusSingle, Count only for StatusAmbiguous and
// Reason only for StatusFetchFailed.
type Outcome struct {
	Status Status  `json:"status"`
	Value  float64 `json:"value,omitempty"`
	Count  int     `json:"count,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// SinglePrice returns an Outcome for a successfully resolved price.
func SinglePrice(value float64) *Outcome {
	return &Outcome{Status: StatusSingle, Value: value}
}

// Ambiguous returns an Outcome reporting count indistinguishable candidates.
func Ambiguous(count int) *Outcome {
	return &Outcome{Status: StatusAmbiguous, Count: count}
}

// NotFound returns an Outcome for a page with no resolvable price.
func NotFound() *Outcome {
	return &Outcome{Status: StatusNotFound}
}

// FetchFailed returns an Outcome for a failed page fetch.
func FetchFailed(reason string) *Outcome {
	return &Outcome{Status: StatusFetchFailed, Reason: reason}
}

// Crawler runs the fetch, locate, match and resolve pipeline for a request.
type Crawler interface {
	// Crawl returns a terminal Outcome for the request. Absence of a price
	// is reported through the Outcome; only configuration errors (invalid
	// locator, unsupported currency) are returned as errors.
	Crawl(ctx context.Context, req Request) (*Outcome, error)
}
