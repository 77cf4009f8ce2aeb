package goquery

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docpage"
	"golang.org/x/net/html"
)

// Ensure Document implements docpage.IdentifierSource at compile time.
var _ docpage.IdentifierSource = (*Document)(nil)

// DefaultTimeSelector matches the elements a page marks for humanizing.
const DefaultTimeSelector = "time.timeago, abbr.timeago, span.timeago"

// Document is a parsed documentation page whose elements can be humanized
// and scanned for identifiers in place.
type Document struct {
	doc *goquery.Document
}

// Parse parses an HTML page.
func Parse(htmlContent string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, docpage.Errorf(docpage.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// TimeElements returns the elements matching selector in document order.
// An empty selector uses DefaultTimeSelector.
func (d *Document) TimeElements(selector string) []docpage.TimeElement {
	if selector == "" {
		selector = DefaultTimeSelector
	}
	var elems []docpage.TimeElement
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elems = append(elems, newElement(sel))
	})
	return elems
}

// Identifiers lists every element carrying an id together with the
// data-kind marker of its nearest enclosing container.
func (d *Document) Identifiers(ctx context.Context) ([]docpage.RawIdentifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raws []docpage.RawIdentifier
	d.doc.Find("*[id]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		kind, _ := sel.Closest("[data-kind]").Attr("data-kind")
		raws = append(raws, docpage.RawIdentifier{ID: id, KindCode: kind})
	})
	return raws, nil
}

// HTML renders the document, including any changes made through its
// elements.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render document: %w", err)
		}
	}
	return buf.String(), nil
}

// Element adapts a goquery selection of a single node to
// docpage.TimeElement.
type Element struct {
	sel *goquery.Selection
	key string
}

var _ docpage.TimeElement = (*Element)(nil)

func newElement(sel *goquery.Selection) *Element {
	return &Element{sel: sel, key: nodeKey(sel.Get(0))}
}

// Key returns a hash of the node's position in the tree.
func (e *Element) Key() string { return e.key }

// IsTime reports whether the node is a <time> element.
func (e *Element) IsTime() bool { return goquery.NodeName(e.sel) == "time" }

func (e *Element) Attr(name string) (string, bool) { return e.sel.Attr(name) }

func (e *Element) SetAttr(name, value string) { e.sel.SetAttr(name, value) }

func (e *Element) Text() string { return e.sel.Text() }

// SetText replaces the node's children with a single text node.
func (e *Element) SetText(text string) { e.sel.SetText(text) }

// nodeKey hashes the path from the root to n, naming each step by tag and
// position among element siblings.
func nodeKey(n *html.Node) string {
	var steps []string
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		pos := 0
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode {
				pos++
			}
		}
		steps = append(steps, n.Data+"["+strconv.Itoa(pos)+"]")
	}
	var b strings.Builder
	for i := len(steps) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(steps[i])
	}
	return fmt.Sprintf("%x", xxhash.Sum64String(b.String()))
}
