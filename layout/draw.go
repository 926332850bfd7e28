package layout

import (
	"math"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"cellnav/dom"
	"cellnav/render"
)

// Draw paints the visible part of the layout onto c, one terminal cell per
// CharWidth x LineHeight pixels, and marks the caret at p in reverse video.
func (l *Layout) Draw(c *render.Canvas, box render.BoxStyle, p dom.Point) {
	for _, t := range l.tables {
		l.drawTable(c, box, t)
	}

	for _, r := range l.regions {
		for _, ln := range r.lines {
			row := l.row(ln.top)
			if row < 0 || row >= c.Height() {
				continue
			}
			for _, g := range ln.glyphs {
				if g.box.Width() == 0 {
					continue
				}
				c.Set(l.col(g.box.Left), row, g.r, styleOf(g.node))
			}
		}
	}

	if x, y, ok := l.caretAt(p); ok {
		col, row := l.col(x), l.row(y)
		cell := c.Get(col, row)
		cell.Style.Reverse = true
		c.SetStyle(col, row, cell.Style)
	}
}

func (l *Layout) row(y float64) int {
	return int(math.Floor((y - l.scrollY) / l.metrics.LineHeight))
}

func (l *Layout) col(x float64) int {
	return int(math.Floor(x / l.metrics.CharWidth))
}

// borderRow is the terminal row of a horizontal border at page y. It sits
// in the padding band above the cell's first line.
func (l *Layout) borderRow(y float64) int {
	return l.row(y - l.metrics.CellPaddingY)
}

func (l *Layout) drawTable(c *render.Canvas, box render.BoxStyle, t tableGeom) {
	type key struct{ x, y int }
	horiz := make(map[key]bool)
	vert := make(map[key]bool)

	for _, f := range t.cells {
		left, right := l.col(f.Left), l.col(f.Right)
		top, bottom := l.borderRow(f.Top), l.borderRow(f.Bottom)
		for x := left; x <= right; x++ {
			horiz[key{x, top}] = true
			horiz[key{x, bottom}] = true
		}
		for y := top; y <= bottom; y++ {
			vert[key{left, y}] = true
			vert[key{right, y}] = true
		}
	}

	paint := func(k key) {
		up := vert[k] && vert[key{k.x, k.y - 1}]
		down := vert[k] && vert[key{k.x, k.y + 1}]
		left := horiz[k] && horiz[key{k.x - 1, k.y}]
		right := horiz[k] && horiz[key{k.x + 1, k.y}]
		c.Set(k.x, k.y, box.Junction(up, down, left, right), render.Style{Dim: true})
	}
	for k := range horiz {
		paint(k)
	}
	for k := range vert {
		if !horiz[k] {
			paint(k)
		}
	}
}

// caretAt returns the page position the caret at p is drawn at.
func (l *Layout) caretAt(p dom.Point) (x, y float64, ok bool) {
	if p.IsZero() {
		return 0, 0, false
	}
	if dom.IsText(p.Node) {
		runes := l.runes[p.Node]
		switch {
		case p.Offset < len(runes) && runes[p.Offset].Width() > 0:
			return runes[p.Offset].Left, runes[p.Offset].Top, true
		case p.Offset > 0 && p.Offset <= len(runes):
			b := runes[p.Offset-1]
			return b.Right, b.Top, true
		}
		return 0, 0, false
	}

	if child := dom.Child(p.Node, p.Offset); child != nil {
		if dom.IsText(child) {
			return l.caretAt(dom.Start(child))
		}
		if b, ok := l.elements[child]; ok {
			return b.Left, b.Top, true
		}
	}
	if prev := dom.Child(p.Node, p.Offset-1); prev != nil && dom.IsText(prev) {
		return l.caretAt(dom.End(prev))
	}
	if b, ok := l.elements[p.Node]; ok {
		if dom.IsCell(p.Node) {
			return b.Left + l.metrics.CellPaddingX, b.Top + l.metrics.CellPaddingY, true
		}
		return b.Left, b.Top, true
	}
	return 0, 0, false
}

func styleOf(n *html.Node) render.Style {
	var s render.Style
	for a := n.Parent; a != nil; a = a.Parent {
		switch a.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Th, atom.B, atom.Strong:
			s.Bold = true
		case atom.U:
			s.Underline = true
		case atom.A:
			s.FgColor = 34
		}
	}
	return s
}
