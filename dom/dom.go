// Package dom provides caret points and structural queries over x/net/html trees.
package dom

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Point is a position in the tree: a node and an offset into it.
// For text nodes the offset counts runes, for elements it counts children.
// A Point never owns its node and is only valid until the tree changes.
type Point struct {
	Node   *html.Node
	Offset int
}

// At is shorthand for Point{n, offset}.
func At(n *html.Node, offset int) Point {
	return Point{Node: n, Offset: offset}
}

// Start returns the point before the first child or rune of n.
func Start(n *html.Node) Point {
	return Point{Node: n, Offset: 0}
}

// End returns the point after the last child or rune of n.
func End(n *html.Node) Point {
	return Point{Node: n, Offset: Length(n)}
}

// Equal compares node identity and offset.
func (p Point) Equal(q Point) bool {
	return p.Node == q.Node && p.Offset == q.Offset
}

// IsZero reports whether the point refers to no node.
func (p Point) IsZero() bool {
	return p.Node == nil
}

func (p Point) String() string {
	if p.Node == nil {
		return "<nil>"
	}
	switch p.Node.Type {
	case html.TextNode:
		return fmt.Sprintf("%q:%d", p.Node.Data, p.Offset)
	case html.ElementNode:
		return fmt.Sprintf("<%s>:%d", p.Node.Data, p.Offset)
	}
	return fmt.Sprintf("node(%d):%d", p.Node.Type, p.Offset)
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsBr reports whether n is a <br> element.
func IsBr(n *html.Node) bool {
	return IsElement(n) && n.DataAtom == atom.Br
}

// Length returns the largest valid offset into n.
func Length(n *html.Node) int {
	if n == nil {
		return 0
	}
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// Child returns the i-th child of n, or nil.
func Child(n *html.Node, i int) *html.Node {
	if n == nil || i < 0 {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// ChildIndex returns the position of n among its siblings.
func ChildIndex(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// Attr returns the value of the attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// FindElement returns the first element with the given tag in document order.
func FindElement(n *html.Node, tag atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// TextContent returns the concatenated text below n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return sb.String()
}

// IsWhitespace reports whether n is a text node holding only whitespace.
func IsWhitespace(n *html.Node) bool {
	return IsText(n) && strings.TrimSpace(n.Data) == ""
}

// Parse parses an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// ParseString parses HTML from a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Body returns the <body> of a parsed document, or doc itself when absent.
func Body(doc *html.Node) *html.Node {
	if body := FindElement(doc, atom.Body); body != nil {
		return body
	}
	return doc
}
