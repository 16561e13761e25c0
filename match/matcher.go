// Package match implements title-based disambiguation of candidate
// elements. A price is rarely inside the exact element that names the
// product, so the matcher searches each candidate's DOM neighborhood
// (siblings, children, ancestors) for text similar to a known product
// title and keeps the first candidate whose neighborhood matches.
package match

import (
	"github.com/agnivade/levenshtein"
	"github.com/fwojciec/pricewatch"
)

// DefaultThreshold is the maximum edit distance at which an element's text
// is accepted as matching the target title. Empirically tuned against real
// shop pages; alternate values were not validated.
const DefaultThreshold = 5

// Ensure Matcher implements pricewatch.TitleMatcher at compile time.
var _ pricewatch.TitleMatcher = (*Matcher)(nil)

// Matcher performs a greedy depth-first similarity search. It is stateless
// across calls and safe for concurrent use.
type Matcher struct {
	threshold int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the closeness threshold.
// Defaults to DefaultThreshold (5) if not specified.
func WithThreshold(n int) Option {
	return func(m *Matcher) {
		m.threshold = n
	}
}

// NewMatcher creates a new Matcher.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindCorrectElement returns the first candidate whose neighborhood search
// accepts a match for title, or nil if every candidate exhausts its search.
// Ties favor document order: this is a greedy "first accepted match"
// procedure, not a global-optimum search.
func (m *Matcher) FindCorrectElement(candidates []pricewatch.Element, title string) pricewatch.Element {
	for _, root := range candidates {
		visited := make(map[pricewatch.Element]struct{})
		if m.search(root, title, visited) != nil {
			return root
		}
	}
	return nil
}

// search explores one node. Precedence at every level is fixed: own text,
// then next-siblings, then children, then the nearest ancestor div.
// The visited set guarantees termination: each call either moves to an
// unvisited node or returns.
func (m *Matcher) search(el pricewatch.Element, title string, visited map[pricewatch.Element]struct{}) pricewatch.Element {
	if el == nil {
		return nil
	}
	if _, ok := visited[el]; ok {
		return nil
	}
	visited[el] = struct{}{}

	// An element with no text is skipped for scoring but still recursed
	// into below.
	if text := el.Text(); text != "" {
		if levenshtein.ComputeDistance(text, title) < m.threshold {
			return el
		}
	}

	// Sibling scan does not descend into sibling subtrees. The best
	// sibling is accepted when it comes within the threshold.
	if best, ok := bestSibling(el.NextSiblings(), title); ok && best.Distance < m.threshold {
		return best.Element
	}

	for _, child := range el.Children() {
		if found := m.search(child, title, visited); found != nil {
			return found
		}
	}

	// Widen outward when the downward search fails.
	if div := ancestorDiv(el); div != nil {
		return m.search(div, title, visited)
	}

	return nil
}

// bestSibling scores each non-empty sibling against the title and returns
// the lowest-distance candidate. Reports false when nothing was scored.
func bestSibling(siblings []pricewatch.Element, title string) (pricewatch.MatchCandidate, bool) {
	var best pricewatch.MatchCandidate
	found := false

	for _, sib := range siblings {
		text := sib.Text()
		if text == "" {
			continue
		}
		distance := levenshtein.ComputeDistance(text, title)
		if !found || distance < best.Distance {
			best = pricewatch.MatchCandidate{Element: sib, Distance: distance}
			found = true
		}
	}

	return best, found
}

// ancestorDiv returns the nearest ancestor div, or nil if there is none.
func ancestorDiv(el pricewatch.Element) pricewatch.Element {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag() == "div" {
			return p
		}
	}
	return nil
}
