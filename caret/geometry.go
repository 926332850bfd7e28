package caret

import (
	"golang.org/x/net/html"

	"cellnav/dom"
)

// Oracle is the host's layout engine. All coordinates are viewport
// (client) pixels. Queries may force a synchronous layout in the host, so
// callers keep their use bounded.
type Oracle interface {
	// BoundingBox returns the border box of an element.
	BoundingBox(n *html.Node) (Box, bool)
	// RangeBox returns the box covering runes [start, end) of a text node.
	RangeBox(n *html.Node, start, end int) (Box, bool)
	// HitTest resolves a viewport coordinate to the nearest caret point.
	// It fails outside the viewport and outside renderable content.
	HitTest(x, y float64) (dom.Point, bool)

	ScrollBy(dx, dy float64)
	ViewportHeight() float64
	ScrollY() float64
}

// BoxAt returns the caret box for a point. Elements yield their bounding
// box. Text yields the box of the rune after the offset, or of the rune
// before it at the end of the node: a zero-width box is not reliable
// enough to hit-test against.
func BoxAt(o Oracle, n *html.Node, offset int) (Box, bool) {
	switch {
	case dom.IsElement(n):
		return o.BoundingBox(n)
	case dom.IsText(n):
		return partialBox(o, n, offset)
	}
	return Box{}, false
}

// BoxAtPoint is BoxAt for a dom.Point.
func BoxAtPoint(o Oracle, p dom.Point) (Box, bool) {
	return BoxAt(o, p.Node, p.Offset)
}

func partialBox(o Oracle, n *html.Node, offset int) (Box, bool) {
	if offset >= 0 && offset < dom.Length(n) {
		return o.RangeBox(n, offset, offset+1)
	}
	if offset > 0 {
		return o.RangeBox(n, offset-1, offset)
	}
	return Box{}, false
}

// HitTest resolves a viewport coordinate to a caret point.
func HitTest(o Oracle, x, y float64) (dom.Point, bool) {
	return o.HitTest(x, y)
}

// SelectionBox returns the box of a selection. A collapsed selection uses
// BoxAt; otherwise the boxes of both ends are joined. Zero-height results
// are returned as they are.
func SelectionBox(o Oracle, start, end dom.Point) (Box, bool) {
	if start.Equal(end) {
		return BoxAtPoint(o, start)
	}
	a, okA := BoxAtPoint(o, start)
	b, okB := BoxAtPoint(o, end)
	switch {
	case okA && okB:
		return a.Union(b), true
	case okA:
		return a, true
	case okB:
		return b, true
	}
	return Box{}, false
}
