package formsearch

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Document is a parsed HTML page.
type Document struct {
	root *goquery.Document
}

// Element is a single element node of a Document.
type Element struct {
	sel *goquery.Selection
}

// ParseDocument builds a Document from an HTML body using the HTML5 parsing
// algorithm, so unclosed and misnested tags are repaired the way a browser
// would repair them.
func ParseDocument(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: goquery.NewDocumentFromNode(node)}, nil
}

// DecodeDocument parses a response body after converting it to UTF-8. The
// encoding comes from a byte order mark, the charset parameter of
// contentType, or a <meta> declaration in the first 1024 bytes, in that
// order, and falls back to windows-1252 for bodies that are not valid UTF-8.
func DecodeDocument(body []byte, contentType string) (*Document, error) {
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	return ParseDocument(enc.NewDecoder().Reader(bytes.NewReader(body)))
}

// Descendants returns every element with the given tag, in document order.
func (d *Document) Descendants(tag atom.Atom) []Element {
	return elements(d.root.Find(tag.String()))
}

// Tag returns the element's tag name.
func (e Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// Attr returns the value of the named attribute and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns the named attribute, or fallback when it is absent.
func (e Element) AttrOr(name, fallback string) string {
	return e.sel.AttrOr(name, fallback)
}

// Descendants returns the element's descendants with the given tag, in
// document order. The element itself is never included.
func (e Element) Descendants(tag atom.Atom) []Element {
	return elements(e.sel.Find(tag.String()))
}

// Text returns the element's visible text with surrounding whitespace removed.
func (e Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func elements(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}
