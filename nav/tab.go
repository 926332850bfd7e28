package nav

import (
	"golang.org/x/net/html"

	"cellnav/dom"
)

// tab moves the caret to the next (or, going back, previous) editable cell
// of the table. Tab past the last editable cell adds a row.
func (n *Navigator) tab(sel Selection, back bool) Result {
	cell, ok := dom.ClosestCell(sel.End.Node, n.opts.IsRoot)
	if !ok {
		return Result{Selection: sel, Outcome: None{Reason: "not in a cell"}}
	}
	table, ok := dom.TableOf(cell)
	if !ok {
		return Result{Selection: sel, Outcome: None{Reason: "cell outside a table"}}
	}

	cells := dom.Cells(table)
	at := -1
	for i, c := range cells {
		if c == cell {
			at = i
			break
		}
	}

	step := 1
	if back {
		step = -1
	}
	for i := at + step; i >= 0 && i < len(cells); i += step {
		if dom.Editable(cells[i]) {
			return n.moveTo(cells[i])
		}
	}

	if back || n.opts.FixedRows {
		return Result{Selection: sel, Outcome: None{Reason: "no editable cell"}}
	}
	row := n.opts.InsertRow(cell.Parent)
	n.log.V(1).Info("inserted row", "after", cell.Parent.Data)
	if target := firstEditable(row); target != nil {
		return n.moveTo(target)
	}
	return Result{Selection: sel, Outcome: None{Reason: "inserted row has no editable cell"}}
}

func (n *Navigator) moveTo(cell *html.Node) Result {
	return Result{Selection: Resolve(dom.Start(cell)), Handled: true, Status: Moved}
}

func firstEditable(row *html.Node) *html.Node {
	if row == nil {
		return nil
	}
	for _, c := range dom.RowCells(row) {
		if dom.Editable(c) {
			return c
		}
	}
	return nil
}
