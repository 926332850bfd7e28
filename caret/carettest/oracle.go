// Package carettest provides a scriptable caret.Oracle for tests.
package carettest

import (
	"golang.org/x/net/html"

	"cellnav/caret"
	"cellnav/dom"
)

var _ = caret.Oracle((*Oracle)(nil))

// Probe is one recorded hit-test in page coordinates.
type Probe struct {
	X, Y float64
}

// Oracle answers geometry queries from fixed tables. Boxes are stored in
// page coordinates and reported shifted by the current scroll offset.
type Oracle struct {
	Elements map[*html.Node]caret.Box
	Runes    map[*html.Node][]caret.Box

	// Hit resolves a page coordinate. A nil Hit misses everywhere.
	Hit func(x, y float64) (dom.Point, bool)

	Height float64 // viewport height; 0 means unbounded
	Scroll float64

	Probes  []Probe
	Scrolls []float64
}

// New returns an empty oracle.
func New() *Oracle {
	return &Oracle{
		Elements: make(map[*html.Node]caret.Box),
		Runes:    make(map[*html.Node][]caret.Box),
	}
}

func (o *Oracle) BoundingBox(n *html.Node) (caret.Box, bool) {
	b, ok := o.Elements[n]
	if !ok {
		return caret.Box{}, false
	}
	return b.TranslateVertical(-o.Scroll), true
}

func (o *Oracle) RangeBox(n *html.Node, start, end int) (caret.Box, bool) {
	runes := o.Runes[n]
	if start < 0 || end > len(runes) || start >= end {
		return caret.Box{}, false
	}
	b := runes[start]
	for _, r := range runes[start+1 : end] {
		b = b.Union(r)
	}
	return b.TranslateVertical(-o.Scroll), true
}

func (o *Oracle) HitTest(x, y float64) (dom.Point, bool) {
	py := y + o.Scroll
	o.Probes = append(o.Probes, Probe{X: x, Y: py})
	if o.Hit == nil {
		return dom.Point{}, false
	}
	if o.Height > 0 && (y < 0 || y >= o.Height) {
		return dom.Point{}, false
	}
	return o.Hit(x, py)
}

func (o *Oracle) ScrollBy(_, dy float64) {
	o.Scroll += dy
	o.Scrolls = append(o.Scrolls, dy)
}

func (o *Oracle) ViewportHeight() float64 {
	if o.Height == 0 {
		return 1 << 20
	}
	return o.Height
}

func (o *Oracle) ScrollY() float64 { return o.Scroll }

// Line lays out text as one row of fixed-width rune boxes starting at
// (x, y) and returns the boxes.
func (o *Oracle) Line(n *html.Node, x, y, w, h float64) []caret.Box {
	var boxes []caret.Box
	for range []rune(n.Data) {
		boxes = append(boxes, caret.Box{Left: x, Top: y, Right: x + w, Bottom: y + h})
		x += w
	}
	o.Runes[n] = boxes
	return boxes
}
