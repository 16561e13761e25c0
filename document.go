package pricewatch

// DocumentParser parses raw HTML bytes into a traversable document.
// Parsing is best-effort and permissive: malformed or unclosed markup is
// recovered the way browsers recover it, never rejected.
type DocumentParser interface {
	Parse(html []byte) (Document, error)
}

// Document is a parsed HTML tree scoped to a single pipeline invocation.
// Elements returned by a Document must never be retained past that
// invocation. Documents are not safe for concurrent use.
type Document interface {
	// FindByID returns every element whose id attribute equals id exactly.
	// Duplicate ids are tolerated; all matches are returned in document order.
	FindByID(id string) []Element

	// FindByClass returns every element whose class list contains class as
	// one of its whitespace-separated tokens, in document order.
	FindByClass(class string) []Element
}

// Element is a handle into a parsed document.
//
// Element values originating from the same Document are canonical: two
// handles to the same node compare equal, so Elements can be used directly
// as map keys (the matcher relies on this for its visited set).
type Element interface {
	// Tag returns the lowercase tag name (e.g. "div", "span").
	Tag() string

	// Text returns the element's concatenated, whitespace-normalized text
	// content. Never returns anything but a valid string; empty means the
	// element has no text.
	Text() string

	// Classes returns the element's class tokens in attribute order.
	Classes() []string

	// Parent returns the nearest element ancestor, or nil at the root.
	Parent() Element

	// Children returns the element children in document order.
	Children() []Element

	// NextSiblings returns the following element siblings in document order.
	NextSiblings() []Element
}
