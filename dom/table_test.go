package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func cellTexts(cells []*html.Node) []string {
	var out []string
	for _, c := range cells {
		out = append(out, TextContent(c))
	}
	return out
}

func TestClosestCell(t *testing.T) {
	body := mustBody(t, grid)
	a2 := mustPoint(t, body, "0/0/1/0/0:0").Node

	cell, ok := ClosestCell(a2, nil)
	if !ok || TextContent(cell) != "a2" {
		t.Fatalf("ClosestCell: got %v", cell)
	}

	// A root below the cell hides it.
	if _, ok := ClosestCell(a2, func(n *html.Node) bool { return n == cell }); ok {
		t.Error("ClosestCell must not return the root itself")
	}

	if _, ok := ClosestCell(body, nil); ok {
		t.Error("body is not in a cell")
	}
}

func TestSharedRow(t *testing.T) {
	body := mustBody(t, grid)
	cells := Cells(body.FirstChild)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if _, ok := SharedRow(cells[0], cells[1]); !ok {
		t.Error("a1 and b1 share a row")
	}
	if _, ok := SharedRow(cells[0], cells[2]); ok {
		t.Error("a1 and a2 do not share a row")
	}
}

func TestCellsSkipsNestedTables(t *testing.T) {
	body := mustBody(t, `<table><tr><td>x<table><tr><td>inner</td></tr></table></td><td>y</td></tr></table>`)
	outer := body.FirstChild
	got := Cells(outer)
	if len(got) != 2 {
		t.Fatalf("expected 2 outer cells, got %v", cellTexts(got))
	}
	if rows := Rows(outer); len(rows) != 1 {
		t.Errorf("expected 1 outer row, got %d", len(rows))
	}
}

func TestEditable(t *testing.T) {
	body := mustBody(t, `<div contenteditable="true"><table><tr>`+
		`<td contenteditable="false">a</td><td>b</td>`+
		`<td contenteditable="false"><span contenteditable="true">c</span></td>`+
		`</tr></table></div>`)
	cells := Cells(body.FirstChild.FirstChild)

	tests := []struct {
		node     *html.Node
		editable bool
	}{
		{cells[0], false},
		{cells[1], true},
		{cells[2], false},
		{cells[2].FirstChild, true},
	}
	for _, tt := range tests {
		if got := Editable(tt.node); got != tt.editable {
			t.Errorf("Editable(%s): got %v, expected %v", TextContent(tt.node), got, tt.editable)
		}
	}
}

func TestInsertRowAfter(t *testing.T) {
	body := mustBody(t, `<table><tr><td contenteditable="false">d</td><td colspan="2">e</td></tr></table>`)
	table := body.FirstChild
	row := Rows(table)[0]

	tr := InsertRowAfter(row)
	if row.NextSibling != tr {
		t.Fatal("new row must follow the source row")
	}
	cells := RowCells(tr)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if _, ok := Attr(cells[0], "contenteditable"); ok {
		t.Error("new cells must be editable")
	}
	if v, _ := Attr(cells[1], "colspan"); v != "2" {
		t.Errorf("colspan not carried over: %q", v)
	}
	if !IsBr(cells[0].FirstChild) {
		t.Error("new cells hold a <br>")
	}
	if len(Rows(table)) != 2 {
		t.Error("table should have two rows")
	}
}
