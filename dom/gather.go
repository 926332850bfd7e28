package dom

import "golang.org/x/net/html"

// Gather selects which side of a node a leaf search walks towards.
type Gather int

const (
	// Before walks backwards in document order.
	Before Gather = iota
	// After walks forwards in document order.
	After
)

func (g Gather) String() string {
	if g == Before {
		return "before"
	}
	return "after"
}

// Leaf returns the nearest leaf on g's side of n, outside n's own subtree.
// The walk never climbs into a node for which isRoot returns true.
func (g Gather) Leaf(n *html.Node, isRoot func(*html.Node) bool) (*html.Node, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if isRoot != nil && isRoot(cur) {
			return nil, false
		}
		if sib := g.sibling(cur); sib != nil {
			return g.descend(sib), true
		}
	}
	return nil, false
}

// VisibleLeaf is Leaf skipping whitespace-only text nodes.
func (g Gather) VisibleLeaf(n *html.Node, isRoot func(*html.Node) bool) (*html.Node, bool) {
	cur := n
	for {
		leaf, ok := g.Leaf(cur, isRoot)
		if !ok {
			return nil, false
		}
		if !IsWhitespace(leaf) {
			return leaf, true
		}
		cur = leaf
	}
}

// Edge returns the caret point at the side of leaf facing the walk:
// its start when walking forwards, its end when walking backwards.
// Void elements such as <br> are addressed through their parent.
func (g Gather) Edge(leaf *html.Node) Point {
	if isVoid(leaf) && leaf.Parent != nil {
		i := ChildIndex(leaf)
		if g == After {
			return At(leaf.Parent, i)
		}
		return At(leaf.Parent, i+1)
	}
	if g == After {
		return Start(leaf)
	}
	return End(leaf)
}

func (g Gather) sibling(n *html.Node) *html.Node {
	if g == Before {
		return n.PrevSibling
	}
	return n.NextSibling
}

func (g Gather) descend(n *html.Node) *html.Node {
	for {
		var next *html.Node
		if g == Before {
			next = n.LastChild
		} else {
			next = n.FirstChild
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// FirstText returns the first non-whitespace text node below n.
func FirstText(n *html.Node) (*html.Node, bool) {
	return findText(n, After)
}

// LastText returns the last non-whitespace text node below n.
func LastText(n *html.Node) (*html.Node, bool) {
	return findText(n, Before)
}

func findText(n *html.Node, g Gather) (*html.Node, bool) {
	if IsText(n) {
		return n, !IsWhitespace(n)
	}
	c := n.FirstChild
	if g == Before {
		c = n.LastChild
	}
	for c != nil {
		if t, ok := findText(c, g); ok {
			return t, true
		}
		c = g.sibling(c)
	}
	return nil, false
}

func isVoid(n *html.Node) bool {
	switch n.Data {
	case "br", "img", "hr", "input", "wbr":
		return true
	}
	return false
}
