// Package layout places an HTML tree on a fixed-pitch pixel grid and
// answers the geometry queries caret navigation needs: element and text
// boxes, hit-testing and scrolling.
package layout

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"cellnav/caret"
	"cellnav/dom"
)

var _ = caret.Oracle((*Layout)(nil))

// Metrics are the pixel dimensions of the grid.
type Metrics struct {
	CharWidth      float64
	LineHeight     float64
	HeadingScale   float64 // line height multiplier for h1-h6
	CellPaddingX   float64
	CellPaddingY   float64
	BorderX        float64 // between and around columns
	BorderY        float64 // above and below a table
	BlockGap       float64 // after top-level blocks
	MaxColumnWidth int     // characters
	ContentWidth   int     // characters
}

// DefaultMetrics returns metrics that map one character to one terminal
// cell at 8x16 pixels.
func DefaultMetrics() Metrics {
	return Metrics{
		CharWidth:      8,
		LineHeight:     16,
		HeadingScale:   2,
		CellPaddingX:   8,
		CellPaddingY:   8,
		BorderX:        8,
		BorderY:        16,
		BlockGap:       16,
		MaxColumnWidth: 24,
		ContentWidth:   80,
	}
}

type glyph struct {
	node   *html.Node
	offset int
	r      rune
	box    caret.Box
}

type line struct {
	top, bottom float64
	glyphs      []glyph
	anchor      dom.Point // caret point for a line without glyphs
}

// region is a box owning lines: a table cell, or a block outside tables.
type region struct {
	node  *html.Node
	box   caret.Box
	lines []*line
	cell  bool
	depth int
}

type tableGeom struct {
	node  *html.Node
	box   caret.Box
	cells []caret.Box // border boxes, one border width wider on the left
}

// Layout is a laid out document plus a viewport onto it. All stored
// geometry is in page coordinates; the Oracle methods report viewport
// coordinates.
type Layout struct {
	root    *html.Node
	metrics Metrics

	regions  []*region
	tables   []tableGeom
	elements map[*html.Node]caret.Box
	runes    map[*html.Node][]caret.Box
	height   float64

	viewport float64
	scrollY  float64

	cell  *region // innermost cell being laid out
	depth int
}

// New lays out root (usually <body>) with a viewport of the given height.
func New(root *html.Node, m Metrics, viewportHeight float64) *Layout {
	l := &Layout{root: root, metrics: m, viewport: viewportHeight}
	l.Reflow()
	return l
}

// Reflow recomputes the layout after the tree changed. The scroll offset
// is kept, clamped to the new height.
func (l *Layout) Reflow() {
	l.regions = nil
	l.tables = nil
	l.elements = make(map[*html.Node]caret.Box)
	l.runes = make(map[*html.Node][]caret.Box)
	l.cell = nil
	l.depth = 0

	width := float64(l.metrics.ContentWidth) * l.metrics.CharWidth
	l.height = l.container(l.root, 0, 0, width, l.metrics.LineHeight)
	l.elements[l.root] = caret.Box{Left: 0, Top: 0, Right: width, Bottom: l.height}
	l.scrollBy(0)
}

// Root returns the laid out node.
func (l *Layout) Root() *html.Node { return l.root }

// Metrics returns the grid dimensions.
func (l *Layout) Metrics() Metrics { return l.metrics }

// Height returns the total document height in pixels.
func (l *Layout) Height() float64 { return l.height }

// SetViewportHeight resizes the viewport.
func (l *Layout) SetViewportHeight(h float64) {
	l.viewport = h
	l.scrollBy(0)
}

// container lays out the children of n inside a column of the given
// width starting at y, and returns the y below the last child.
func (l *Layout) container(n *html.Node, x, y, width, lh float64) float64 {
	var inline []*html.Node
	flush := func() {
		if len(inline) > 0 {
			y = l.flow(n, inline, x, y, width, lh)
			inline = nil
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case skipped(c):
		case dom.IsTable(c):
			flush()
			y = l.table(c, x, y, width, lh)
			y += l.gap()
		case isBlock(c):
			flush()
			childLH := lh
			if isHeading(c) {
				childLH = lh * l.metrics.HeadingScale
			}
			indent := l.indent(c)
			top := y
			y = l.container(c, x+indent, y, width-indent, childLH)
			l.elements[c] = caret.Box{Left: x, Top: top, Right: x + width, Bottom: y}
			if spaced(c) {
				y += l.gap()
			}
		case dom.IsText(c) || dom.IsElement(c):
			inline = append(inline, c)
		}
	}
	flush()
	return y
}

func (l *Layout) gap() float64 {
	if l.cell != nil {
		return 0
	}
	return l.metrics.BlockGap
}

func (l *Layout) indent(n *html.Node) float64 {
	return float64(indentChars(n)) * l.metrics.CharWidth
}

func indentChars(n *html.Node) int {
	switch n.DataAtom {
	case atom.Li, atom.Blockquote, atom.Dd:
		return 2
	}
	return 0
}

func skipped(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Noscript:
		return true
	}
	return false
}

func isBlock(n *html.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	switch n.DataAtom {
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Body,
		atom.Dd, atom.Div, atom.Dl, atom.Dt, atom.Fieldset, atom.Figure,
		atom.Footer, atom.Form, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5,
		atom.H6, atom.Header, atom.Hr, atom.Li, atom.Main, atom.Nav, atom.Ol,
		atom.P, atom.Pre, atom.Section, atom.Table, atom.Ul:
		return true
	}
	return false
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// spaced reports whether a blank gap follows the block.
func spaced(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Pre, atom.Blockquote:
		return true
	}
	return false
}
