package nav

import (
	"golang.org/x/net/html"

	"cellnav/dom"
	"cellnav/vertical"
)

// Classify decides whether moving the caret from origin to result in
// direction d crossed into another row of cells.
//
// Cells are found by walking up from each point without passing a node
// for which isRoot is true. A result in a different cell of the same row
// means the probe slid sideways, and a result on the origin cell's own
// boundary in the direction of travel means the probe fell into the cell's
// padding. Both count as a failure of the origin cell so the caller can
// restart from its edge.
func Classify(isRoot func(*html.Node) bool, origin, result dom.Point, d vertical.Direction) Outcome {
	from, ok := dom.ClosestCell(origin.Node, isRoot)
	if !ok {
		return None{Reason: "origin not in a cell"}
	}
	to, ok := dom.ClosestCell(result.Node, isRoot)
	if !ok {
		return None{Reason: "result not in a cell"}
	}

	if from != to {
		if _, ok := dom.SharedRow(from, to); ok {
			return failed(from, d)
		}
		return Success{}
	}
	if result.Node == from && atBoundary(result, d) {
		return failed(from, d)
	}
	return None{Reason: "same cell"}
}

func failed(cell *html.Node, d vertical.Direction) Outcome {
	if d.IsUp() {
		return FailedUp{Cell: cell}
	}
	return FailedDown{Cell: cell}
}

func atBoundary(p dom.Point, d vertical.Direction) bool {
	if d.IsUp() {
		return p.Offset == 0
	}
	return p.Offset >= dom.Length(p.Node)
}
