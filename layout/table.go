package layout

import (
	"strconv"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"cellnav/caret"
	"cellnav/dom"
)

// table lays out t as a grid. Columns are as wide as their widest cell
// (capped), rows as tall as their tallest cell, and every cell box is
// stretched to its row.
func (l *Layout) table(t *html.Node, x, y, width, lh float64) float64 {
	m := l.metrics
	rows := dom.Rows(t)
	cells := make([][]*html.Node, len(rows))
	for i, row := range rows {
		cells[i] = dom.RowCells(row)
	}

	widths := l.columnWidths(cells)
	columns := make([]float64, len(widths)+1)
	columns[0] = x
	for i, w := range widths {
		columns[i+1] = columns[i] + m.BorderX + 2*m.CellPaddingX + float64(w)*m.CharWidth
	}
	right := columns[len(columns)-1] + m.BorderX

	rowY := y + m.BorderY
	var frames []caret.Box
	for i, row := range rows {
		bottom := rowY + 2*m.CellPaddingY
		var placed []*region

		col := 0
		for _, cell := range cells[i] {
			span := colspan(cell)
			if col+span > len(widths) {
				span = len(widths) - col
			}
			if span <= 0 {
				break
			}
			left := columns[col] + m.BorderX
			inner := columns[col+span] - left - 2*m.CellPaddingX

			reg := &region{node: cell, cell: true, depth: l.depth + 1}
			saved := l.cell
			l.cell = reg
			l.depth++
			end := l.container(cell, left+m.CellPaddingX, rowY+m.CellPaddingY, inner, lh)
			l.depth--
			l.cell = saved

			if end+m.CellPaddingY > bottom {
				bottom = end + m.CellPaddingY
			}
			reg.box = caret.Box{Left: left, Top: rowY, Right: columns[col+span]}
			placed = append(placed, reg)
			col += span
		}

		for _, reg := range placed {
			reg.box.Bottom = bottom
			l.elements[reg.node] = reg.box
			l.regions = append(l.regions, reg)
			frame := reg.box
			frame.Left -= m.BorderX
			frames = append(frames, frame)
		}
		l.elements[row] = caret.Box{Left: x, Top: rowY, Right: right, Bottom: bottom}
		rowY = bottom
	}

	box := caret.Box{Left: x, Top: y, Right: right, Bottom: rowY + m.BorderY}
	l.elements[t] = box
	l.sectionBoxes(t)
	l.tables = append(l.tables, tableGeom{node: t, box: box, cells: frames})
	return box.Bottom
}

// sectionBoxes gives thead, tbody and tfoot the union of their rows.
func (l *Layout) sectionBoxes(t *html.Node) {
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsElement(c) || dom.IsRow(c) {
			continue
		}
		var box caret.Box
		found := false
		for r := c.FirstChild; r != nil; r = r.NextSibling {
			b, ok := l.elements[r]
			if !ok || !dom.IsRow(r) {
				continue
			}
			if found {
				box = box.Union(b)
			} else {
				box, found = b, true
			}
		}
		if found {
			l.elements[c] = box
		}
	}
}

func (l *Layout) columnWidths(rows [][]*html.Node) []int {
	var widths []int
	for _, cells := range rows {
		col := 0
		for _, cell := range cells {
			span := colspan(cell)
			for len(widths) < col+span {
				widths = append(widths, 1)
			}
			if span == 1 {
				w := measure(cell)
				if w > l.metrics.MaxColumnWidth {
					w = l.metrics.MaxColumnWidth
				}
				if w > widths[col] {
					widths[col] = w
				}
			}
			col += span
		}
	}
	return widths
}

func colspan(cell *html.Node) int {
	v, ok := dom.Attr(cell, "colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// measure returns the widest unwrapped line of n in characters, with
// whitespace collapsed, block indents counted and lines broken at <br> and
// block boundaries.
func measure(n *html.Node) int {
	best, cur, lead := 0, 0, 0
	space := true
	endLine := func() {
		if space && cur > lead {
			cur--
		}
		if cur > best {
			best = cur
		}
		cur = 0
		space = true
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case skipped(n):
		case dom.IsText(n):
			for _, r := range n.Data {
				if unicode.IsSpace(r) {
					if !space {
						cur++
						space = true
					}
					continue
				}
				if cur == 0 {
					cur = lead
				}
				cur += runewidth.RuneWidth(r)
				space = false
			}
		case dom.IsBr(n):
			endLine()
		default:
			block := isBlock(n)
			indent := indentChars(n)
			if block {
				endLine()
			}
			lead += indent
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			lead -= indent
			if block {
				endLine()
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	endLine()
	return best
}
