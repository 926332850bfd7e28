package nav

import (
	"testing"

	"cellnav/dom"
)

func TestTabSkipsNonEditableCells(t *testing.T) {
	f := setup(t, "<table><tbody>"+
		`<tr><td contenteditable="false">a</td><td>b</td><td>c</td></tr>`+
		`<tr><td contenteditable="false">d</td><td>e</td><td contenteditable="false">f</td></tr>`+
		"</tbody></table>", nil)
	tab := Key{Code: KeyTab}

	r := f.press(t, "0/0/0/1/0:0", tab)
	f.expectCaret(t, r, "0/0/0/2/0:0")

	r = f.nav.HandleKey(r.Selection, tab)
	f.expectCaret(t, r, "0/0/1/1/0:0")

	// Past the last editable cell a row is added.
	r = f.nav.HandleKey(r.Selection, tab)
	f.expectCaret(t, r, "0/0/2/0:0")
	table, _ := dom.TableOf(r.Selection.End.Node)
	if got := len(dom.Rows(table)); got != 3 {
		t.Errorf("table has %d rows, want 3", got)
	}
}

func TestShiftTabSkipsNonEditableCells(t *testing.T) {
	f := setup(t, "<table><tbody>"+
		`<tr><td contenteditable="false">a</td><td>b</td><td contenteditable="false">c</td></tr>`+
		`<tr><td contenteditable="false">d</td><td>e</td><td>f</td></tr>`+
		"</tbody></table>", nil)
	back := Key{Code: KeyTab, Shift: true}

	r := f.press(t, "0/0/1/2/0:0", back)
	f.expectCaret(t, r, "0/0/1/1/0:0")

	r = f.nav.HandleKey(r.Selection, back)
	f.expectCaret(t, r, "0/0/0/1/0:0")

	// Nothing editable before b.
	r = f.nav.HandleKey(r.Selection, back)
	if r.Handled || r.Status != Unchanged {
		t.Errorf("status = %v, want unchanged", r.Status)
	}
}

func TestTabWithFixedRows(t *testing.T) {
	f := setup(t, grid, nil)
	f.nav.opts.FixedRows = true

	r := f.press(t, "0/0/1/1/0:1", Key{Code: KeyTab})
	if r.Handled {
		t.Fatalf("tab past the last cell handled: %v", r.Selection)
	}
	table, _ := dom.TableOf(f.point(t, "0/0/1/1:0").Node)
	if got := len(dom.Rows(table)); got != 2 {
		t.Errorf("table has %d rows, want 2", got)
	}
}

func TestTabOutsideTable(t *testing.T) {
	f := setup(t, "<p>text</p>", nil)
	r := f.press(t, "0/0:1", Key{Code: KeyTab})
	if r.Handled {
		t.Error("tab outside a table handled")
	}
}
