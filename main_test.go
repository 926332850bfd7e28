package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"cellnav/config"
	"cellnav/nav"
)

const page = `<html><body><h1>Prices</h1><table>` +
	`<tr><td>apples</td><td>3</td></tr>` +
	`<tr><td>pears</td><td contenteditable="false">5</td></tr>` +
	`</table></body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSessionStartsInFirstCell(t *testing.T) {
	s, err := newSession(config.Default(), writePage(t), 1000, logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	// body: h1, table; the first cell holds "apples".
	if got := s.caret(); got != "1/0/0/0/0:0" {
		t.Errorf("caret at %s", got)
	}
}

func TestSessionPresses(t *testing.T) {
	s, err := newSession(config.Default(), writePage(t), 1000, logr.Discard())
	if err != nil {
		t.Fatal(err)
	}

	if r := s.press(nav.Key{Code: nav.KeyDown}); r.Status != nav.Moved {
		t.Fatalf("down: %v %v", r.Status, r.Outcome)
	}
	if got := s.caret(); got != "1/0/1/0/0:0" {
		t.Errorf("after down caret at %s", got)
	}

	// The only cell after "pears" is not editable, so Tab adds a row.
	if r := s.press(nav.Key{Code: nav.KeyTab}); r.Status != nav.Moved {
		t.Fatalf("tab: %v %v", r.Status, r.Outcome)
	}
	if got := s.caret(); !strings.HasSuffix(got, ":0") || strings.Count(got, "/") != 3 {
		t.Errorf("tab into the new row left caret at %s", got)
	}

	// The new row was laid out, so Up reaches the row above it.
	if r := s.press(nav.Key{Code: nav.KeyUp}); r.Status != nav.Moved {
		t.Fatalf("up from the new row: %v %v", r.Status, r.Outcome)
	}
	if !strings.Contains(s.statusLine(), "up: moved") {
		t.Errorf("status line %q", s.statusLine())
	}
}

func TestSessionPlaceAt(t *testing.T) {
	s, err := newSession(config.Default(), writePage(t), 1000, logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.placeAt("1/0/0/1/0:1"); err != nil {
		t.Fatal(err)
	}
	if err := s.placeAt("9/9:0"); err == nil {
		t.Error("expected an error for a bad path")
	}
}

func TestUnknownEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Host.Engine = "lynx"
	if _, err := newSession(cfg, writePage(t), 1000, logr.Discard()); err == nil {
		t.Error("expected an error for an unknown engine")
	}
}

func TestRunScript(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[layout]\nasciiBorders = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	err := runScript(options{path: writePage(t), configPath: cfgPath, keys: "down,up,left", printMode: true}, &out)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out.String(), "\n")
	if len(lines) < 4 {
		t.Fatalf("short output:\n%s", out.String())
	}
	for i, want := range []string{"down", "up", "left"} {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want a %s move", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[2], "unchanged") {
		t.Errorf("left should be left to the host: %q", lines[2])
	}
	if !strings.Contains(out.String(), "| apples |") {
		t.Errorf("page not printed with ascii borders:\n%s", out.String())
	}
}

func TestDecodeKey(t *testing.T) {
	kb := config.Default().Keybindings
	tests := []struct {
		name string
		in   []byte
		want nav.Key
		ok   bool
	}{
		{"arrow up", []byte{27, '[', 'A'}, nav.Key{Code: nav.KeyUp}, true},
		{"arrow down", []byte{27, '[', 'B'}, nav.Key{Code: nav.KeyDown}, true},
		{"shift tab", []byte{27, '[', 'Z'}, nav.Key{Code: nav.KeyTab, Shift: true}, true},
		{"tab", []byte{'\t'}, nav.Key{Code: nav.KeyTab}, true},
		{"vi down", []byte{'j'}, nav.Key{Code: nav.KeyDown}, true},
		{"vi up", []byte{'k'}, nav.Key{Code: nav.KeyUp}, true},
		{"unbound letter", []byte{'x'}, nav.Key{}, false},
		{"unknown escape", []byte{27, '[', 'H'}, nav.Key{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeKey(tt.in, kb)
			if ok != tt.ok || got != tt.want {
				t.Errorf("got %v %v, want %v %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
