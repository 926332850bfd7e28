// Package caret computes caret rectangles from DOM points through a host
// geometry oracle.
package caret

import (
	"fmt"
	"math"
)

// Box is a rectangle in viewport pixels. Boxes are values; every operation
// returns a new Box.
type Box struct {
	Left, Top, Right, Bottom float64
}

// NewBox returns a box with its edges ordered so Left <= Right and
// Top <= Bottom.
func NewBox(left, top, right, bottom float64) Box {
	return Box{
		Left:   math.Min(left, right),
		Top:    math.Min(top, bottom),
		Right:  math.Max(left, right),
		Bottom: math.Max(top, bottom),
	}
}

func (b Box) Width() float64  { return b.Right - b.Left }
func (b Box) Height() float64 { return b.Bottom - b.Top }
func (b Box) MidX() float64   { return (b.Left + b.Right) / 2 }
func (b Box) MidY() float64   { return (b.Top + b.Bottom) / 2 }

// Empty reports whether the box has no height. Zero-width caret boxes are
// normal; zero-height ones come from collapsed or invisible content.
func (b Box) Empty() bool {
	return b.Bottom <= b.Top
}

// TranslateVertical shifts the box down by dy (up when dy is negative).
func (b Box) TranslateVertical(dy float64) Box {
	b.Top += dy
	b.Bottom += dy
	return b
}

// WithTopAt moves the top edge to top and keeps the bottom edge, clamping
// so the box never inverts.
func (b Box) WithTopAt(top float64) Box {
	b.Top = math.Min(top, b.Bottom)
	return b
}

// WithBottomAt moves the bottom edge to bottom and keeps the top edge,
// clamping so the box never inverts.
func (b Box) WithBottomAt(bottom float64) Box {
	b.Bottom = math.Max(bottom, b.Top)
	return b
}

// Union returns the smallest box covering b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Left:   math.Min(b.Left, o.Left),
		Top:    math.Min(b.Top, o.Top),
		Right:  math.Max(b.Right, o.Right),
		Bottom: math.Max(b.Bottom, o.Bottom),
	}
}

// Contains reports whether (x, y) lies inside b. The right and bottom
// edges are exclusive.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Right && y >= b.Top && y < b.Bottom
}

func (b Box) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", b.Left, b.Top, b.Right, b.Bottom)
}
