package render

import (
	"strings"
	"testing"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"ascii", "hello", 5},
		{"empty", "", 0},
		{"box drawing", "┌─┐", 3},
		{"wide cjk", "表格", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringWidth(tt.s); got != tt.want {
				t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hello world", 5, "hello"},
		{"hi", 5, "hi"},
		{"表格", 3, "表"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := TruncateToWidth(tt.s, tt.width); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 4); got != "abcdef" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}

func TestJunction(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		want                  rune
	}{
		{"cross", true, true, true, true, '┼'},
		{"top tee", false, true, true, true, '┬'},
		{"bottom tee", true, false, true, true, '┴'},
		{"left tee", true, true, false, true, '├'},
		{"right tee", true, true, true, false, '┤'},
		{"top left", false, true, false, true, '┌'},
		{"bottom right", true, false, true, false, '┘'},
		{"vertical", true, true, false, false, '│'},
		{"horizontal", false, false, true, true, '─'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SingleBox.Junction(tt.up, tt.down, tt.left, tt.right)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanvasWriteString(t *testing.T) {
	c := NewCanvas(6, 2)
	n := c.WriteString(1, 0, "abcdefgh", Style{})
	if n != 5 {
		t.Errorf("wrote %d cells, want 5", n)
	}
	c.Set(10, 10, 'x', Style{}) // out of bounds is ignored
	c.DrawHLine(0, 1, 3, '-', Style{})

	lines := c.PlainLines()
	if lines[0] != " abcde" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != "---" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestCanvasRenderStyles(t *testing.T) {
	c := NewCanvas(3, 1)
	c.WriteString(0, 0, "abc", Style{})
	c.SetStyle(1, 0, Style{Reverse: true})

	out := c.Render()
	if !strings.Contains(out, "a\033[0;7mb\033[0mc") {
		t.Errorf("reverse video not applied around b: %q", out)
	}
	if c.Get(1, 0).Rune != 'b' {
		t.Error("SetStyle changed the rune")
	}
}

func TestWritePlainDropsTrailingBlankRows(t *testing.T) {
	c := NewCanvas(4, 3)
	c.WriteString(0, 0, "ab", Style{})

	var sb strings.Builder
	if err := c.WritePlain(&sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "ab\n" {
		t.Errorf("got %q", sb.String())
	}
}
