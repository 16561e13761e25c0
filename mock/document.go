package mock

import "github.com/fwojciec/pricewatch"

var (
	_ pricewatch.DocumentParser = (*DocumentParser)(nil)
	_ pricewatch.Document       = (*Document)(nil)
	_ pricewatch.Element        = (*Element)(nil)
)

// DocumentParser is a mock implementation of pricewatch.DocumentParser.
type DocumentParser struct {
	ParseFn func(html []byte) (pricewatch.Document, error)
}

func (p *DocumentParser) Parse(html []byte) (pricewatch.Document, error) {
	return p.ParseFn(html)
}

// Document is a mock implementation of pricewatch.Document.
type Document struct {
	FindByIDFn    func(id string) []pricewatch.Element
	FindByClassFn func(class string) []pricewatch.Element
}

func (d *Document) FindByID(id string) []pricewatch.Element {
	return d.FindByIDFn(id)
}

func (d *Document) FindByClass(class string) []pricewatch.Element {
	return d.FindByClassFn(class)
}

// Element is a mock implementation of pricewatch.Element. Unset fields
// return zero values so tests only describe what they use.
type Element struct {
	TagFn          func() string
	TextFn         func() string
	ClassesFn      func() []string
	ParentFn       func() pricewatch.Element
	ChildrenFn     func() []pricewatch.Element
	NextSiblingsFn func() []pricewatch.Element
}

func (e *Element) Tag() string {
	if e.TagFn == nil {
		return ""
	}
	return e.TagFn()
}

func (e *Element) Text() string {
	if e.TextFn == nil {
		return ""
	}
	return e.TextFn()
}

func (e *Element) Classes() []string {
	if e.ClassesFn == nil {
		return nil
	}
	return e.ClassesFn()
}

func (e *Element) Parent() pricewatch.Element {
	if e.ParentFn == nil {
		return nil
	}
	return e.ParentFn()
}

func (e *Element) Children() []pricewatch.Element {
	if e.ChildrenFn == nil {
		return nil
	}
	return e.ChildrenFn()
}

func (e *Element) NextSiblings() []pricewatch.Element {
	if e.NextSiblingsFn == nil {
		return nil
	}
	return e.NextSiblingsFn()
}
