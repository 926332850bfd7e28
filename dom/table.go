package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsCell reports whether n is a <td> or <th>.
func IsCell(n *html.Node) bool {
	return IsElement(n) && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

// IsRow reports whether n is a <tr>.
func IsRow(n *html.Node) bool {
	return IsElement(n) && n.DataAtom == atom.Tr
}

// IsTable reports whether n is a <table>.
func IsTable(n *html.Node) bool {
	return IsElement(n) && n.DataAtom == atom.Table
}

// Closest returns n or its nearest ancestor satisfying match. The search
// stops at the first node for which isRoot is true; that node is not a
// candidate.
func Closest(n *html.Node, match, isRoot func(*html.Node) bool) (*html.Node, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if isRoot != nil && isRoot(cur) {
			return nil, false
		}
		if match(cur) {
			return cur, true
		}
	}
	return nil, false
}

// ClosestCell returns the table cell containing n.
func ClosestCell(n *html.Node, isRoot func(*html.Node) bool) (*html.Node, bool) {
	return Closest(n, IsCell, isRoot)
}

// SharedRow returns the row holding both cells, if they share one.
func SharedRow(a, b *html.Node) (*html.Node, bool) {
	if a == nil || b == nil || a.Parent != b.Parent || !IsRow(a.Parent) {
		return nil, false
	}
	return a.Parent, true
}

// TableOf returns the table enclosing a cell.
func TableOf(cell *html.Node) (*html.Node, bool) {
	return Closest(cell, IsTable, nil)
}

// Cells lists the cells of table in document order, skipping cells of
// nested tables.
func Cells(table *html.Node) []*html.Node {
	var cells []*html.Node
	goquery.NewDocumentFromNode(table).Find("td, th").Each(func(_ int, s *goquery.Selection) {
		cell := s.Get(0)
		if owner, ok := TableOf(cell); ok && owner == table {
			cells = append(cells, cell)
		}
	})
	return cells
}

// Rows lists the rows of table in document order, skipping nested tables.
func Rows(table *html.Node) []*html.Node {
	var rows []*html.Node
	goquery.NewDocumentFromNode(table).Find("tr").Each(func(_ int, s *goquery.Selection) {
		row := s.Get(0)
		if owner, ok := Closest(row, IsTable, nil); ok && owner == table {
			rows = append(rows, row)
		}
	})
	return rows
}

// RowCells lists the cells directly inside row.
func RowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if IsCell(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// Editable reports whether the caret may be placed inside n: the nearest
// element carrying a contenteditable attribute must not set it to "false".
func Editable(n *html.Node) bool {
	closest := goquery.NewDocumentFromNode(n).Closest("[contenteditable]")
	if closest.Length() == 0 {
		return true
	}
	v, _ := closest.Attr("contenteditable")
	return v != "false"
}

// InsertRowAfter appends a new row after row with as many empty cells as
// row has. Each cell holds a <br> so it keeps a line box. The new row is
// returned.
func InsertRowAfter(row *html.Node) *html.Node {
	tr := &html.Node{Type: html.ElementNode, DataAtom: atom.Tr, Data: "tr"}
	for _, src := range RowCells(row) {
		cell := &html.Node{Type: html.ElementNode, DataAtom: src.DataAtom, Data: src.Data}
		for _, a := range src.Attr {
			if a.Key == "colspan" {
				cell.Attr = append(cell.Attr, a)
			}
		}
		cell.AppendChild(&html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"})
		tr.AppendChild(cell)
	}
	row.Parent.InsertBefore(tr, row.NextSibling)
	return tr
}
