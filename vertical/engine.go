package vertical

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"cellnav/caret"
	"cellnav/dom"
)

// ErrUnsupportedHost is returned by ForHost for hosts with no strategy.
var ErrUnsupportedHost = errors.New("vertical: unsupported host")

// Tuning holds the constants of the probe search.
type Tuning struct {
	JumpSize       float64 // pixels moved per probe
	Tolerance      float64 // edges closer than this count as the same line
	Overlap        float64 // how far an adjusted probe reaches into the guess
	MaxAdjustments int     // probe budget per movement
	ScrollMargin   float64 // extra scroll past the viewport edge
}

// DefaultTuning returns the standard constants.
func DefaultTuning() Tuning {
	return Tuning{
		JumpSize:       5,
		Tolerance:      1,
		Overlap:        1,
		MaxAdjustments: 100,
		ScrollMargin:   10,
	}
}

// Strategy finds the caret point one line away from a caret box.
type Strategy interface {
	Try(o caret.Oracle, from caret.Box, d Direction) (dom.Point, bool)
}

// ForHost picks the strategy for a host engine name. The choice depends on
// the host only, so callers make it once at setup.
func ForHost(host string, t Tuning, log logr.Logger) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "chrome", "chromium", "edge", "blink", "safari", "webkit", "firefox", "gecko":
		return &Iterative{Tuning: t, Log: log}, nil
	case "ie", "trident", "legacy":
		return &Legacy{Tuning: t}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedHost, host)
}

// Iterative probes repeatedly, jumping past wrapped-line artifacts and
// re-anchoring onto the box it lands on, then scrolls the target into view.
type Iterative struct {
	Tuning Tuning
	Log    logr.Logger
}

func (it *Iterative) Try(o caret.Oracle, from caret.Box, d Direction) (dom.Point, bool) {
	moved := d.Move(from, it.Tuning.JumpSize)
	adjusted := it.adjustTil(o, d, from, moved)
	it.Log.V(1).Info("probe settled", "direction", d, "start", d.Edge(from), "moved", d.Edge(moved), "adjusted", d.Edge(adjusted))
	return it.reveal(o, d, adjusted)
}

func (it *Iterative) adjustTil(o caret.Oracle, d Direction, original, c caret.Box) caret.Box {
	good := c
	for i := 0; i < it.Tuning.MaxAdjustments; i++ {
		p, ok := o.HitTest(c.Left, d.Edge(c))
		if !ok {
			it.Log.V(1).Info("probe missed", "x", c.Left, "y", d.Edge(c), "fallback", d.Edge(good))
			return good
		}
		good = c

		guess, ok := caret.BoxAtPoint(o, p)
		if !ok {
			it.Log.V(1).Info("no box at probe", "point", p)
			return c
		}

		s, next := d.adjust(guess, original, c, it.Tuning)
		it.Log.V(1).Info("probe", "iteration", i, "point", p, "guess", guess, "step", s)
		switch s {
		case stepRetry:
			c = next
		case stepAdjusted:
			return next
		default:
			return c
		}
	}
	it.Log.V(1).Info("probe budget spent", "budget", it.Tuning.MaxAdjustments)
	return c
}

// reveal scrolls the viewport when the probe edge lies outside it and
// resolves the final point at the scrolled position.
func (it *Iterative) reveal(o caret.Oracle, d Direction, c caret.Box) (dom.Point, bool) {
	edge := d.Edge(c)
	var delta float64
	switch height := o.ViewportHeight(); {
	case edge >= height:
		delta = edge - height + it.Tuning.ScrollMargin
	case edge < 0:
		delta = edge - it.Tuning.ScrollMargin
	}
	if delta != 0 {
		before := o.ScrollY()
		o.ScrollBy(0, delta)
		delta = o.ScrollY() - before
		it.Log.V(1).Info("scrolled", "delta", delta)
	}
	return o.HitTest(c.Left, edge-delta)
}

// Legacy makes a single probe one jump past the caret edge. It suits hosts
// whose partial-box hit-testing is unreliable.
type Legacy struct {
	Tuning Tuning
}

func (l *Legacy) Try(o caret.Oracle, from caret.Box, d Direction) (dom.Point, bool) {
	return o.HitTest(from.Left, d.Edge(d.Move(from, l.Tuning.JumpSize)))
}
