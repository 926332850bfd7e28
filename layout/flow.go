package layout

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"cellnav/caret"
	"cellnav/dom"
)

type flowItem struct {
	node   *html.Node // text node or <br>
	offset int
	r      rune
}

func (it flowItem) isBreak() bool { return dom.IsBr(it.node) }

func (it flowItem) isSpace() bool { return !it.isBreak() && unicode.IsSpace(it.r) }

type flowState struct {
	l         *Layout
	x, width  float64
	y, lh     float64
	cx        float64 // pen position relative to x
	cur       *line
	lines     []*line
	prevSpace bool
}

func (f *flowState) open(anchor dom.Point) {
	f.cur = &line{top: f.y, bottom: f.y + f.lh, anchor: anchor}
	f.cx = 0
	f.prevSpace = true
}

func (f *flowState) close() {
	if f.cur != nil {
		f.lines = append(f.lines, f.cur)
		f.y += f.lh
		f.cur = nil
	}
	f.cx = 0
	f.prevSpace = true
}

func (f *flowState) place(it flowItem, w float64) {
	b := caret.Box{Left: f.x + f.cx, Top: f.y, Right: f.x + f.cx + w, Bottom: f.y + f.lh}
	f.l.runes[it.node][it.offset] = b
	if f.cur != nil {
		f.cur.glyphs = append(f.cur.glyphs, glyph{node: it.node, offset: it.offset, r: it.r, box: b})
	}
	f.cx += w
}

func (f *flowState) advance(r rune) float64 {
	return float64(runewidth.RuneWidth(r)) * f.l.metrics.CharWidth
}

// flow wraps inline content into lines. Whitespace collapses, words wrap
// at the column width, long words break anywhere, and <br> ends a line.
// A trailing <br> opens no empty line.
func (l *Layout) flow(container *html.Node, nodes []*html.Node, x, y, width, lh float64) float64 {
	var items []flowItem
	var inlines []*html.Node
	for _, n := range nodes {
		l.collect(n, &items, &inlines)
	}

	f := &flowState{l: l, x: x, width: width, y: y, lh: lh, prevSpace: true}
	for i := 0; i < len(items); {
		it := items[i]
		switch {
		case it.isBreak():
			if f.cur == nil {
				f.open(dom.At(it.node.Parent, dom.ChildIndex(it.node)))
			}
			l.elements[it.node] = caret.Box{Left: f.x + f.cx, Top: f.y, Right: f.x + f.cx, Bottom: f.y + f.lh}
			f.close()
			i++

		case it.isSpace():
			switch w := f.advance(' '); {
			case f.cur == nil || f.prevSpace:
				f.place(it, 0)
			case f.cx+w > f.width:
				f.place(it, 0)
				f.close()
			default:
				f.place(it, w)
				f.prevSpace = true
			}
			i++

		default:
			j := i
			var ww float64
			for j < len(items) && !items[j].isBreak() && !items[j].isSpace() {
				ww += f.advance(items[j].r)
				j++
			}
			if f.cur != nil && f.cx > 0 && f.cx+ww > f.width {
				f.close()
			}
			if f.cur == nil {
				f.open(dom.At(it.node, it.offset))
			}
			for k := i; k < j; k++ {
				w := f.advance(items[k].r)
				if f.cx > 0 && f.cx+w > f.width {
					f.close()
					f.open(dom.At(items[k].node, items[k].offset))
				}
				f.place(items[k], w)
			}
			f.prevSpace = false
			i = j
		}
	}
	f.close()

	for _, n := range inlines {
		if b, ok := l.inlineBox(n); ok {
			l.elements[n] = b
		}
	}

	switch {
	case l.cell != nil:
		l.cell.lines = append(l.cell.lines, f.lines...)
	case len(f.lines) > 0:
		l.regions = append(l.regions, &region{
			node:  container,
			box:   caret.Box{Left: x, Top: y, Right: x + width, Bottom: f.y},
			lines: f.lines,
			depth: l.depth,
		})
	}
	return f.y
}

// collect flattens inline content into flow items, allocating rune boxes
// for every text node it meets.
func (l *Layout) collect(n *html.Node, items *[]flowItem, inlines *[]*html.Node) {
	switch {
	case skipped(n):
	case dom.IsText(n):
		l.runes[n] = make([]caret.Box, dom.Length(n))
		i := 0
		for _, r := range n.Data {
			*items = append(*items, flowItem{node: n, offset: i, r: r})
			i++
		}
	case dom.IsBr(n):
		*items = append(*items, flowItem{node: n})
	case dom.IsElement(n):
		*inlines = append(*inlines, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			l.collect(c, items, inlines)
		}
	}
}

// inlineBox is the union of the boxes of everything inside n.
func (l *Layout) inlineBox(n *html.Node) (caret.Box, bool) {
	var out caret.Box
	found := false
	add := func(b caret.Box) {
		if !found {
			out, found = b, true
			return
		}
		out = out.Union(b)
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case dom.IsText(c):
				for _, b := range l.runes[c] {
					add(b)
				}
			case dom.IsBr(c):
				if b, ok := l.elements[c]; ok {
					add(b)
				}
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return out, found
}
