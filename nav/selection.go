package nav

import "cellnav/dom"

// Selection is a DOM range. End is the focus, the end that moves.
type Selection struct {
	Start dom.Point
	End   dom.Point
}

// Collapse returns the empty selection at p.
func Collapse(p dom.Point) Selection {
	return Selection{Start: p, End: p}
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.Start.Equal(s.End)
}

// Resolve turns a probed point into a caret. A point at the start or end
// of an element moves into the first or last text inside it, so a caret
// landing on a cell sits in the cell's text. Elements without text keep
// the element point.
func Resolve(p dom.Point) Selection {
	return Collapse(intoText(p))
}

// ResolveRange returns the selection spanning a to b.
func ResolveRange(a, b dom.Point) Selection {
	return Selection{Start: a, End: b}
}

func intoText(p dom.Point) dom.Point {
	if !dom.IsElement(p.Node) {
		return p
	}
	switch p.Offset {
	case 0:
		if t, ok := dom.FirstText(p.Node); ok {
			return dom.Start(t)
		}
	case dom.Length(p.Node):
		if t, ok := dom.LastText(p.Node); ok {
			return dom.End(t)
		}
	}
	return p
}
