// Package goquery provides a goquery-based implementation of
// pricewatch.DocumentParser. Parsing follows standard permissive browser
// recovery rules, so malformed or unclosed markup never fails the caller.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricewatch"
	"golang.org/x/net/html"
)

// Ensure interfaces are implemented at compile time.
var (
	_ pricewatch.DocumentParser = (*Parser)(nil)
	_ pricewatch.Document       = (*Document)(nil)
	_ pricewatch.Element        = (*Element)(nil)
)

// Parser parses raw HTML bytes into a pricewatch.Document.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a traversable document. The underlying parser
// recovers from malformed markup the way browsers do.
func (p *Parser) Parse(htmlBytes []byte) (pricewatch.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return nil, pricewatch.Errorf(pricewatch.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{
		doc:      doc,
		wrappers: make(map[*html.Node]*Element),
	}, nil
}

// Document is a parsed HTML tree. It hands out canonical element wrappers:
// two handles to the same node compare equal, which lets callers key maps
// by pricewatch.Element. Document is not safe for concurrent use.
type Document struct {
	doc      *goquery.Document
	wrappers map[*html.Node]*Element
}

// FindByID returns every element whose id attribute equals id exactly.
// HTML forbids duplicate ids but the real web violates this constantly,
// so all matches are returned in document order.
func (d *Document) FindByID(id string) []pricewatch.Element {
	var out []pricewatch.Element
	d.doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		if v, _ := sel.Attr("id"); v == id {
			out = append(out, d.wrap(sel.Nodes[0]))
		}
	})
	return out
}

// FindByClass returns every element whose class list contains class as one
// of its whitespace-separated tokens, in document order.
func (d *Document) FindByClass(class string) []pricewatch.Element {
	var out []pricewatch.Element
	d.doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass(class) {
			out = append(out, d.wrap(sel.Nodes[0]))
		}
	})
	return out
}

// wrap returns the canonical Element for a node, creating it on first use.
func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.wrappers[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.wrappers[n] = el
	return el
}

// Element is a handle to one element node within a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Text returns the element's concatenated, whitespace-normalized text
// content. An element with no text returns the empty string.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.node, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Classes returns the element's class tokens in attribute order.
func (e *Element) Classes() []string {
	for _, attr := range e.node.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

// Parent returns the nearest element ancestor, or nil at the root.
func (e *Element) Parent() pricewatch.Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return e.doc.wrap(p)
		}
	}
	return nil
}

// Children returns the element children in document order.
func (e *Element) Children() []pricewatch.Element {
	var out []pricewatch.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// NextSiblings returns the following element siblings in document order.
func (e *Element) NextSiblings() []pricewatch.Element {
	var out []pricewatch.Element
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			out = append(out, e.doc.wrap(s))
		}
	}
	return out
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
