package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"

	"cellnav/layout"
	"cellnav/vertical"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsMatchPackages(t *testing.T) {
	cfg := Default()
	if diff := cmp.Diff(vertical.DefaultTuning(), cfg.Tuning()); diff != "" {
		t.Errorf("tuning mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(layout.DefaultMetrics(), cfg.Metrics()); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if cfg.Navigation.CellRetries != 1000 {
		t.Errorf("CellRetries = %d, want 1000", cfg.Navigation.CellRetries)
	}
}

func TestDefaultTOMLMatchesDefault(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(DefaultTOML(), &cfg); err != nil {
		t.Fatalf("default TOML does not parse: %v", err)
	}
	if diff := cmp.Diff(Default(), &cfg); diff != "" {
		t.Errorf("DefaultTOML differs from Default (-want +got):\n%s", diff)
	}
}

func TestLoadFileMerges(t *testing.T) {
	path := writeConfig(t, `
[navigation]
jumpSize = 3.0
cellRetries = 10

[host]
engine = "ie"

[keybindings]
quit = "x"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Navigation.JumpSize = 3
	want.Navigation.CellRetries = 10
	want.Host.Engine = "ie"
	want.Keybindings.Quit = "x"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("merged config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad syntax", "[navigation\njumpSize = 1", "parsing config TOML"},
		{"wrong type", "[navigation]\njumpSize = \"far\"", "parsing config TOML"},
		{"unknown key", "[navigation]\njumpsize2 = 1.0", "unknown config key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestMatchSingle(t *testing.T) {
	if !MatchSingle('q', "q") {
		t.Error("q should match")
	}
	if MatchSingle('q', "qq") || MatchSingle('q', "") {
		t.Error("only single-character bindings match")
	}
}
