package nav

import (
	"golang.org/x/net/html"

	"cellnav/dom"
	"cellnav/vertical"
)

// lineBreakSpot handles a caret sitting on an element point beside a
// <br>. Probing from there is unreliable, so the visible leaf on the far
// side of the <br> is classified instead. It returns where the scan should
// start and false when the host should move the caret itself.
func (n *Navigator) lineBreakSpot(p dom.Point, d vertical.Direction) (dom.Point, bool) {
	br := breakBeside(p)
	if br == nil {
		return p, true
	}
	leaf, ok := d.Gather().VisibleLeaf(br, n.opts.IsRoot)
	if !ok {
		n.log.V(1).Info("no leaf past line break", "point", p, "direction", d)
		return p, true
	}

	out := Classify(n.opts.IsRoot, p, d.Gather().Edge(leaf), d)
	n.log.V(1).Info("line break", "point", p, "direction", d, "outcome", out)
	if _, ok := out.(None); ok {
		return p, false
	}

	// The leaf past a trailing <br> may be the next cell in the same row,
	// so the scan restarts from the origin cell's edge rather than from it.
	cell, ok := dom.ClosestCell(p.Node, n.opts.IsRoot)
	if !ok {
		return p, false
	}
	if d.IsUp() {
		return dom.Start(cell), true
	}
	return dom.End(cell), true
}

func breakBeside(p dom.Point) *html.Node {
	if !dom.IsElement(p.Node) {
		return nil
	}
	if c := dom.Child(p.Node, p.Offset); dom.IsBr(c) {
		return c
	}
	if c := dom.Child(p.Node, p.Offset-1); dom.IsBr(c) {
		return c
	}
	return nil
}
