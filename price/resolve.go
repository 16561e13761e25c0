package price

import (
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/pricewatch"
)

// Ensure Resolver implements pricewatch.PriceResolver at compile time.
var _ pricewatch.PriceResolver = (*Resolver)(nil)

// Resolver extracts a currency-tagged number from a matched element.
// Dispatch is an exhaustive switch over the closed Currency set, so an
// unsupported currency is a caller bug reported as EINVALID, never a
// silent default.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the price token found in el for the given currency, or
// a nil token when no currency-tagged number is present. A nil token is
// distinguishable from a legitimately-zero price.
func (r *Resolver) Resolve(el pricewatch.Element, currency pricewatch.Currency) (*pricewatch.PriceToken, error) {
	switch currency {
	case pricewatch.CurrencyYen:
		return resolveBeforeGlyph(el, "円", currency), nil
	case pricewatch.CurrencyUSD:
		return resolveAfterGlyph(el, "$", currency), nil
	default:
		return nil, pricewatch.Errorf(pricewatch.EINVALID, "unsupported currency %q", currency)
	}
}

// resolveBeforeGlyph handles prices written with the glyph after the
// number, as on Japanese shop pages (1,980円). The number lives in a
// "figure" styled span below the matched element.
func resolveBeforeGlyph(el pricewatch.Element, glyph string, currency pricewatch.Currency) *pricewatch.PriceToken {
	fig := findFigureSpan(el)
	if fig == nil {
		return nil
	}

	raw := fig.Text()
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.TrimSpace(strings.ReplaceAll(s, glyph, ""))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		// Prices are never negative; a negative parse is a failure.
		return nil
	}
	return &pricewatch.PriceToken{Raw: raw, Value: v, Currency: currency}
}

// resolveAfterGlyph handles prices written with the glyph before the
// number ($49.99). The number must be adjacent to the glyph within a
// single whitespace-split token.
func resolveAfterGlyph(el pricewatch.Element, glyph string, currency pricewatch.Currency) *pricewatch.PriceToken {
	for _, part := range strings.Fields(el.Text()) {
		if !strings.Contains(part, glyph) {
			continue
		}
		s := strings.ReplaceAll(part, ",", "")
		s = strings.ReplaceAll(s, glyph, "")

		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			continue
		}
		return &pricewatch.PriceToken{Raw: part, Value: v, Currency: currency}
	}
	return nil
}

// findFigureSpan returns the first descendant span carrying the "figure"
// class, in document order.
func findFigureSpan(el pricewatch.Element) pricewatch.Element {
	for _, child := range el.Children() {
		if child.Tag() == "span" && slices.Contains(child.Classes(), "figure") {
			return child
		}
		if found := findFigureSpan(child); found != nil {
			return found
		}
	}
	return nil
}
