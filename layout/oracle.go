package layout

import (
	"math"

	"golang.org/x/net/html"

	"cellnav/caret"
	"cellnav/dom"
)

func (l *Layout) BoundingBox(n *html.Node) (caret.Box, bool) {
	b, ok := l.elements[n]
	if !ok {
		return caret.Box{}, false
	}
	return l.toViewport(b), true
}

func (l *Layout) RangeBox(n *html.Node, start, end int) (caret.Box, bool) {
	runes, ok := l.runes[n]
	if !ok || start < 0 || end > len(runes) || start >= end {
		return caret.Box{}, false
	}
	b := runes[start]
	for _, r := range runes[start+1 : end] {
		b = b.Union(r)
	}
	return l.toViewport(b), true
}

// HitTest finds the caret point under a viewport coordinate. Inside a line
// it picks the nearer side of the nearest glyph. Inside a cell but above
// its first line or below its last it returns the cell's start or end.
func (l *Layout) HitTest(x, y float64) (dom.Point, bool) {
	if y < 0 || y >= l.viewport {
		return dom.Point{}, false
	}
	py := y + l.scrollY

	var best *region
	for _, r := range l.regions {
		if r.box.Contains(x, py) && (best == nil || r.depth > best.depth) {
			best = r
		}
	}
	if best == nil {
		return dom.Point{}, false
	}
	return best.hit(x, py), true
}

func (r *region) hit(x, y float64) dom.Point {
	if len(r.lines) == 0 {
		return dom.Start(r.node)
	}
	if r.cell {
		if y < r.lines[0].top {
			return dom.Start(r.node)
		}
		if y >= r.lines[len(r.lines)-1].bottom {
			return dom.End(r.node)
		}
	}

	nearest := r.lines[0]
	dist := math.Inf(1)
	for _, ln := range r.lines {
		var d float64
		switch {
		case y < ln.top:
			d = ln.top - y
		case y >= ln.bottom:
			d = y - ln.bottom + 1
		}
		if d < dist {
			nearest, dist = ln, d
		}
	}
	return nearest.hit(x)
}

func (ln *line) hit(x float64) dom.Point {
	var last *glyph
	for i := range ln.glyphs {
		g := &ln.glyphs[i]
		if g.box.Width() == 0 {
			continue
		}
		if x < g.box.MidX() {
			return dom.At(g.node, g.offset)
		}
		last = g
	}
	if last != nil {
		return dom.At(last.node, last.offset+1)
	}
	return ln.anchor
}

func (l *Layout) ScrollBy(_, dy float64) {
	l.scrollBy(dy)
}

func (l *Layout) scrollBy(dy float64) {
	limit := math.Max(0, l.height-l.viewport)
	l.scrollY = math.Min(math.Max(l.scrollY+dy, 0), limit)
}

func (l *Layout) ViewportHeight() float64 { return l.viewport }

func (l *Layout) ScrollY() float64 { return l.scrollY }

func (l *Layout) toViewport(b caret.Box) caret.Box {
	return b.TranslateVertical(-l.scrollY)
}
