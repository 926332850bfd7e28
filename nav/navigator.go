// Package nav moves a caret between table cells on arrow and tab keys.
//
// Vertical movement probes the host layout through a vertical.Strategy and
// classifies where the probe landed. When the probe stays inside the
// starting cell the scan restarts from that cell's edge, so a caret in the
// last line of a cell reaches the next row.
package nav

import (
	"github.com/go-logr/logr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"cellnav/caret"
	"cellnav/dom"
	"cellnav/vertical"
)

// DefaultCellRetries bounds the restarts of one vertical scan.
const DefaultCellRetries = 1000

// Status reports what HandleKey did.
type Status int

const (
	// Unchanged means table navigation did not apply; the host should
	// handle the key natively.
	Unchanged Status = iota
	// Moved means the selection in the Result is the new caret.
	Moved
	// Exhausted means the scan gave up after CellRetries restarts.
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Moved:
		return "moved"
	case Exhausted:
		return "exhausted"
	}
	return "unchanged"
}

// Result is the outcome of one key press.
type Result struct {
	Selection Selection
	Handled   bool
	Status    Status
	Outcome   Outcome // last classification, nil for keys that do not probe
}

// Options configure a Navigator.
type Options struct {
	// IsRoot marks the node searches must not walk past. Defaults to the
	// <body> element or the document.
	IsRoot func(*html.Node) bool
	// CellRetries bounds the restarts of a vertical scan.
	CellRetries int
	Logger      logr.Logger
	// InsertRow adds a row after row and returns it. Tab past the last
	// editable cell uses it. Defaults to dom.InsertRowAfter.
	InsertRow func(row *html.Node) *html.Node
	// FixedRows leaves Tab past the last cell to the host.
	FixedRows bool
}

// Navigator handles navigation keys against one host layout.
type Navigator struct {
	oracle   caret.Oracle
	strategy vertical.Strategy
	opts     Options
	log      logr.Logger
}

// New returns a navigator probing o with s.
func New(o caret.Oracle, s vertical.Strategy, opts Options) *Navigator {
	if opts.IsRoot == nil {
		opts.IsRoot = isDocumentRoot
	}
	if opts.CellRetries <= 0 {
		opts.CellRetries = DefaultCellRetries
	}
	if opts.InsertRow == nil {
		opts.InsertRow = dom.InsertRowAfter
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Navigator{oracle: o, strategy: s, opts: opts, log: log.WithName("nav")}
}

func isDocumentRoot(n *html.Node) bool {
	return n.Type == html.DocumentNode || n.DataAtom == atom.Body || n.DataAtom == atom.Html
}

// HandleKey applies k to sel. Up and Down without Shift scan vertically,
// Tab and Shift-Tab move between editable cells. Other keys are left to
// the host.
func (n *Navigator) HandleKey(sel Selection, k Key) Result {
	switch {
	case k.Code == KeyUp && !k.Shift:
		return n.Vertical(sel, vertical.Up)
	case k.Code == KeyDown && !k.Shift:
		return n.Vertical(sel, vertical.Down)
	case k.Code == KeyTab:
		return n.tab(sel, k.Shift)
	}
	return Result{Selection: sel}
}

// Vertical moves the focus of sel one line in direction d, crossing into
// the next row of cells when the line is the last (or first) of its cell.
func (n *Navigator) Vertical(sel Selection, d vertical.Direction) Result {
	p, ok := n.lineBreakSpot(sel.End, d)
	if !ok {
		return Result{Selection: sel, Outcome: None{Reason: "line break in cell"}}
	}

	var out Outcome
	for i := 0; i < n.opts.CellRetries; i++ {
		var next dom.Point
		next, out = n.Step(p, d)
		n.log.V(1).Info("step", "attempt", i, "from", p, "to", next, "outcome", out)

		switch o := out.(type) {
		case Success:
			return Result{Selection: Resolve(next), Handled: true, Status: Moved, Outcome: out}
		case FailedUp:
			p = dom.Start(o.Cell)
		case FailedDown:
			p = dom.End(o.Cell)
		default:
			return Result{Selection: sel, Outcome: out}
		}
	}

	n.log.Info("cell retries exhausted", "budget", n.opts.CellRetries, "direction", d)
	return Result{Selection: sel, Status: Exhausted, Outcome: out}
}

// Step makes one probe from p and classifies where it landed.
func (n *Navigator) Step(p dom.Point, d vertical.Direction) (dom.Point, Outcome) {
	box, ok := caret.BoxAtPoint(n.oracle, p)
	if !ok {
		return dom.Point{}, None{Reason: "no caret box"}
	}
	next, ok := n.strategy.Try(n.oracle, box, d)
	if !ok {
		return dom.Point{}, None{Reason: "probe missed"}
	}
	return next, Classify(n.opts.IsRoot, p, next, d)
}
