package nav

import (
	"testing"

	"golang.org/x/net/html"

	"cellnav/dom"
	"cellnav/vertical"
)

func TestClassify(t *testing.T) {
	doc, err := dom.ParseString(grid + "<p>after</p>")
	if err != nil {
		t.Fatal(err)
	}
	body := dom.Body(doc)
	pt := func(s string) dom.Point {
		p, err := dom.ParsePoint(body, s)
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	cellA := pt("0/0/0/0:0").Node
	isBody := func(n *html.Node) bool { return n == body }
	isCellA := func(n *html.Node) bool { return n == cellA }

	tests := []struct {
		name           string
		isRoot         func(*html.Node) bool
		origin, result string
		dir            vertical.Direction
		want           Outcome
	}{
		{"next row", isBody, "0/0/0/0/0:2", "0/0/1/0/0:0", vertical.Down, Success{}},
		{"previous row", isBody, "0/0/1/0/0:0", "0/0/0/0/0:2", vertical.Up, Success{}},
		{"slid sideways going down", isBody, "0/0/0/0/0:2", "0/0/0/1/0:0", vertical.Down, FailedDown{Cell: cellA}},
		{"slid sideways going up", isBody, "0/0/0/0/0:0", "0/0/0/1/0:0", vertical.Up, FailedUp{Cell: cellA}},
		{"bottom padding", isBody, "0/0/0/0/0:2", "0/0/0/0:1", vertical.Down, FailedDown{Cell: cellA}},
		{"top padding", isBody, "0/0/0/0/0:0", "0/0/0/0:0", vertical.Up, FailedUp{Cell: cellA}},
		{"top padding going down", isBody, "0/0/0/0/0:0", "0/0/0/0:0", vertical.Down, None{Reason: "same cell"}},
		{"same text", isBody, "0/0/0/0/0:0", "0/0/0/0/0:2", vertical.Down, None{Reason: "same cell"}},
		{"outside any table", isBody, "0/0/1/0/0:0", "1/0:0", vertical.Down, None{Reason: "result not in a cell"}},
		{"origin outside any table", isBody, "1/0:0", "0/0/0/0/0:0", vertical.Up, None{Reason: "origin not in a cell"}},
		{"root inside the cell", isCellA, "0/0/0/0/0:0", "0/0/1/0/0:0", vertical.Down, None{Reason: "origin not in a cell"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.isRoot, pt(tt.origin), pt(tt.result), tt.dir)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	doc, err := dom.ParseString("<table><tr><td><b>x</b>yz</td><td><br></td></tr></table>")
	if err != nil {
		t.Fatal(err)
	}
	body := dom.Body(doc)
	pt := func(s string) dom.Point {
		p, err := dom.ParsePoint(body, s)
		if err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cell start descends into the first text", "0/0/0/0:0", "0/0/0/0/0/0:0"},
		{"cell end descends into the last text", "0/0/0/0:2", "0/0/0/0/1:2"},
		{"empty cell keeps the element point", "0/0/0/1:0", "0/0/0/1:0"},
		{"text points are kept", "0/0/0/0/1:1", "0/0/0/0/1:1"},
		{"offsets between children are kept", "0/0/0/0:1", "0/0/0/0:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Resolve(pt(tt.in))
			if !sel.IsCollapsed() {
				t.Fatal("not collapsed")
			}
			if got := dom.FormatPoint(body, sel.End); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	r := ResolveRange(pt("0/0/0/0:0"), pt("0/0/0/1:0"))
	if r.IsCollapsed() {
		t.Error("range collapsed")
	}
}
