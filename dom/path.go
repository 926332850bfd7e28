package dom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Path returns the child indexes leading from root down to n.
func Path(root, n *html.Node) ([]int, bool) {
	var path []int
	for cur := n; cur != root; cur = cur.Parent {
		if cur == nil || cur.Parent == nil {
			return nil, false
		}
		path = append(path, ChildIndex(cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// NodeAt follows path from root.
func NodeAt(root *html.Node, path []int) (*html.Node, bool) {
	n := root
	for _, i := range path {
		if n = Child(n, i); n == nil {
			return nil, false
		}
	}
	return n, true
}

// FormatPoint renders p as "i/j/k:offset" relative to root.
func FormatPoint(root *html.Node, p Point) string {
	path, ok := Path(root, p.Node)
	if !ok {
		return p.String()
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/") + ":" + strconv.Itoa(p.Offset)
}

// ParsePoint is the inverse of FormatPoint. The offset defaults to 0.
func ParsePoint(root *html.Node, s string) (Point, error) {
	pathPart, offPart, hasOffset := strings.Cut(s, ":")
	offset := 0
	if hasOffset {
		n, err := strconv.Atoi(offPart)
		if err != nil {
			return Point{}, fmt.Errorf("parsing offset %q: %w", offPart, err)
		}
		offset = n
	}

	var path []int
	if pathPart != "" {
		for _, field := range strings.Split(pathPart, "/") {
			n, err := strconv.Atoi(field)
			if err != nil {
				return Point{}, fmt.Errorf("parsing path %q: %w", pathPart, err)
			}
			path = append(path, n)
		}
	}

	n, ok := NodeAt(root, path)
	if !ok {
		return Point{}, fmt.Errorf("no node at path %q", pathPart)
	}
	if offset < 0 || offset > Length(n) {
		return Point{}, fmt.Errorf("offset %d out of range for %s", offset, At(n, 0))
	}
	return At(n, offset), nil
}
