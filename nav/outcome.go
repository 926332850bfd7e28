package nav

import (
	"fmt"

	"golang.org/x/net/html"
)

// Outcome is the classification of one vertical probe. The variants are
// None, Success, FailedUp and FailedDown.
type Outcome interface {
	fmt.Stringer
	outcome()
}

// None means table navigation does not apply and the host should move the
// caret natively.
type None struct {
	Reason string
}

// Success means the probe reached a cell in another row.
type Success struct{}

// FailedUp means the probe stayed in Cell (or slid sideways out of it)
// while moving up. The scan restarts from the top of Cell.
type FailedUp struct {
	Cell *html.Node
}

// FailedDown is FailedUp for downward movement; the scan restarts from the
// bottom of Cell.
type FailedDown struct {
	Cell *html.Node
}

func (None) outcome()       {}
func (Success) outcome()    {}
func (FailedUp) outcome()   {}
func (FailedDown) outcome() {}

func (o None) String() string       { return "none(" + o.Reason + ")" }
func (Success) String() string      { return "success" }
func (o FailedUp) String() string   { return "failed-up(" + cellName(o.Cell) + ")" }
func (o FailedDown) String() string { return "failed-down(" + cellName(o.Cell) + ")" }

func cellName(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Data
}
