// Package render provides terminal drawing primitives: a cell canvas, box
// styles, display widths and raw-mode terminal control.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell represents a single character cell in the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// Style represents text styling for a cell.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	Reverse   bool
	FgColor   int // ANSI foreground color code (0 = default, 32 = green, 33 = yellow, etc.)
}

// BoxStyle defines the characters used for drawing boxes.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TopTee      rune
	BottomTee   rune
	LeftTee     rune
	RightTee    rune
	Cross       rune
}

var (
	SingleBox = BoxStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
		TopTee: '┬', BottomTee: '┴', LeftTee: '├', RightTee: '┤', Cross: '┼',
	}

	ASCIIBox = BoxStyle{
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|',
		TopTee: '+', BottomTee: '+', LeftTee: '+', RightTee: '+', Cross: '+',
	}
)

// Junction picks the box character joining lines in the given directions.
func (b BoxStyle) Junction(up, down, left, right bool) rune {
	switch {
	case up && down && left && right:
		return b.Cross
	case down && left && right:
		return b.TopTee
	case up && left && right:
		return b.BottomTee
	case up && down && right:
		return b.LeftTee
	case up && down && left:
		return b.RightTee
	case down && right:
		return b.TopLeft
	case down && left:
		return b.TopRight
	case up && right:
		return b.BottomLeft
	case up && left:
		return b.BottomRight
	case up || down:
		return b.Vertical
	}
	return b.Horizontal
}

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		charWidth := UnicodeWidth(r)
		if width+charWidth > maxWidth {
			return s[:i]
		}
		width += charWidth
	}

	return s
}

// PadRight pads s with spaces up to width cells.
func PadRight(s string, width int) string {
	sWidth := StringWidth(s)
	if sWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sWidth)
}
