// Package vertical moves a caret box up or down by probing the host layout
// until the probe settles on the next line.
package vertical

import (
	"math"

	"cellnav/caret"
	"cellnav/dom"
)

// Direction is a vertical caret movement. Up and Down are the only values.
type Direction struct {
	name   string
	sign   float64
	gather dom.Gather
}

var (
	Up   = Direction{name: "up", sign: -1, gather: dom.Before}
	Down = Direction{name: "down", sign: 1, gather: dom.After}
)

func (d Direction) String() string { return d.name }

// IsUp reports whether d moves towards the top of the document.
func (d Direction) IsUp() bool { return d.sign < 0 }

// Gather is the document-order side searched when walking from a node in
// this direction.
func (d Direction) Gather() dom.Gather { return d.gather }

// Edge projects the edge of b that leads the movement.
func (d Direction) Edge(b caret.Box) float64 {
	if d.IsUp() {
		return b.Top
	}
	return b.Bottom
}

// Move translates b by amount pixels in the direction of travel.
func (d Direction) Move(b caret.Box, amount float64) caret.Box {
	return b.TranslateVertical(d.sign * amount)
}

type step int

const (
	stepConverged step = iota
	stepRetry
	stepAdjusted
)

func (s step) String() string {
	switch s {
	case stepRetry:
		return "retry"
	case stepAdjusted:
		return "adjusted"
	}
	return "converged"
}

// adjust decides what to do with the box found under the probe. guess is
// the box at the probed point, original the box the movement started from
// and c the probe itself.
func (d Direction) adjust(guess, original, c caret.Box, t Tuning) (step, caret.Box) {
	// The probe landed back on the starting line.
	if math.Abs(d.Edge(guess)-d.Edge(original)) < t.Tolerance {
		return stepRetry, d.Move(c, t.JumpSize)
	}
	// The guess lies wholly past the probe: pull the probe inside it.
	if d.IsUp() {
		if guess.Bottom < c.Top {
			return stepAdjusted, c.WithTopAt(guess.Bottom - t.Overlap)
		}
	} else if guess.Top > c.Bottom {
		return stepAdjusted, c.WithBottomAt(guess.Top + t.Overlap)
	}
	return stepConverged, c
}
