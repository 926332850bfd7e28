// Package config provides configuration loading for cellnav using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"cellnav/layout"
	"cellnav/vertical"
)

// Navigation settings for the probe search and the cell scan
type Navigation struct {
	JumpSize       float64 `toml:"jumpSize"`
	Tolerance      float64 `toml:"tolerance"`
	Overlap        float64 `toml:"overlap"`
	MaxAdjustments int     `toml:"maxAdjustments"`
	ScrollMargin   float64 `toml:"scrollMargin"`
	CellRetries    int     `toml:"cellRetries"`
}

// Host settings
type Host struct {
	Engine string `toml:"engine"` // selects the probe strategy, e.g. "chrome" or "ie"
}

// Layout settings for the built-in grid layout, in pixels
type Layout struct {
	CharWidth      float64 `toml:"charWidth"`
	LineHeight     float64 `toml:"lineHeight"`
	HeadingScale   float64 `toml:"headingScale"`
	CellPaddingX   float64 `toml:"cellPaddingX"`
	CellPaddingY   float64 `toml:"cellPaddingY"`
	BorderX        float64 `toml:"borderX"`
	BorderY        float64 `toml:"borderY"`
	BlockGap       float64 `toml:"blockGap"`
	MaxColumnWidth int     `toml:"maxColumnWidth"` // characters
	ContentWidth   int     `toml:"contentWidth"`   // characters
	ASCIIBorders   bool    `toml:"asciiBorders"`
}

// Trace settings
type Trace struct {
	File      string `toml:"file"`      // empty disables tracing
	Verbosity int    `toml:"verbosity"` // 1 traces every probe
}

// Keybindings for the interactive demo. Arrow keys and Tab always work.
type Keybindings struct {
	Quit   string `toml:"quit"`
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Reload string `toml:"reload"`
}

// Config is the main configuration struct
type Config struct {
	Navigation  Navigation  `toml:"navigation"`
	Host        Host        `toml:"host"`
	Layout      Layout      `toml:"layout"`
	Trace       Trace       `toml:"trace"`
	Keybindings Keybindings `toml:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	t := vertical.DefaultTuning()
	m := layout.DefaultMetrics()
	return &Config{
		Navigation: Navigation{
			JumpSize:       t.JumpSize,
			Tolerance:      t.Tolerance,
			Overlap:        t.Overlap,
			MaxAdjustments: t.MaxAdjustments,
			ScrollMargin:   t.ScrollMargin,
			CellRetries:    1000,
		},
		Host: Host{
			Engine: "chrome",
		},
		Layout: Layout{
			CharWidth:      m.CharWidth,
			LineHeight:     m.LineHeight,
			HeadingScale:   m.HeadingScale,
			CellPaddingX:   m.CellPaddingX,
			CellPaddingY:   m.CellPaddingY,
			BorderX:        m.BorderX,
			BorderY:        m.BorderY,
			BlockGap:       m.BlockGap,
			MaxColumnWidth: m.MaxColumnWidth,
			ContentWidth:   m.ContentWidth,
		},
		Keybindings: Keybindings{
			Quit:   "q",
			Up:     "k",
			Down:   "j",
			Reload: "r",
		},
	}
}

// Tuning returns the probe constants.
func (c *Config) Tuning() vertical.Tuning {
	return vertical.Tuning{
		JumpSize:       c.Navigation.JumpSize,
		Tolerance:      c.Navigation.Tolerance,
		Overlap:        c.Navigation.Overlap,
		MaxAdjustments: c.Navigation.MaxAdjustments,
		ScrollMargin:   c.Navigation.ScrollMargin,
	}
}

// Metrics returns the layout grid dimensions.
func (c *Config) Metrics() layout.Metrics {
	return layout.Metrics{
		CharWidth:      c.Layout.CharWidth,
		LineHeight:     c.Layout.LineHeight,
		HeadingScale:   c.Layout.HeadingScale,
		CellPaddingX:   c.Layout.CellPaddingX,
		CellPaddingY:   c.Layout.CellPaddingY,
		BorderX:        c.Layout.BorderX,
		BorderY:        c.Layout.BorderY,
		BlockGap:       c.Layout.BlockGap,
		MaxColumnWidth: c.Layout.MaxColumnWidth,
		ContentWidth:   c.Layout.ContentWidth,
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cellnav"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	return LoadFile(configPath)
}

// LoadFile layers the config file at path on top of the defaults. A
// missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	return merge(cfg, userCfg), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	// Navigation
	mergeFloat(&result.Navigation.JumpSize, user.Navigation.JumpSize)
	mergeFloat(&result.Navigation.Tolerance, user.Navigation.Tolerance)
	mergeFloat(&result.Navigation.Overlap, user.Navigation.Overlap)
	mergeInt(&result.Navigation.MaxAdjustments, user.Navigation.MaxAdjustments)
	mergeFloat(&result.Navigation.ScrollMargin, user.Navigation.ScrollMargin)
	mergeInt(&result.Navigation.CellRetries, user.Navigation.CellRetries)

	// Host
	mergeString(&result.Host.Engine, user.Host.Engine)

	// Layout
	mergeFloat(&result.Layout.CharWidth, user.Layout.CharWidth)
	mergeFloat(&result.Layout.LineHeight, user.Layout.LineHeight)
	mergeFloat(&result.Layout.HeadingScale, user.Layout.HeadingScale)
	mergeFloat(&result.Layout.CellPaddingX, user.Layout.CellPaddingX)
	mergeFloat(&result.Layout.CellPaddingY, user.Layout.CellPaddingY)
	mergeFloat(&result.Layout.BorderX, user.Layout.BorderX)
	mergeFloat(&result.Layout.BorderY, user.Layout.BorderY)
	mergeFloat(&result.Layout.BlockGap, user.Layout.BlockGap)
	mergeInt(&result.Layout.MaxColumnWidth, user.Layout.MaxColumnWidth)
	mergeInt(&result.Layout.ContentWidth, user.Layout.ContentWidth)
	if user.Layout.ASCIIBorders {
		result.Layout.ASCIIBorders = true
	}

	// Trace
	mergeString(&result.Trace.File, user.Trace.File)
	mergeInt(&result.Trace.Verbosity, user.Trace.Verbosity)

	// Keybindings - override each if set
	mergeString(&result.Keybindings.Quit, user.Keybindings.Quit)
	mergeString(&result.Keybindings.Up, user.Keybindings.Up)
	mergeString(&result.Keybindings.Down, user.Keybindings.Down)
	mergeString(&result.Keybindings.Reload, user.Keybindings.Reload)

	return &result
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeFloat(dst *float64, src float64) {
	if src != 0 {
		*dst = src
	}
}

func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# cellnav configuration
# Save to ~/.config/cellnav/config.toml and customize
# Only include settings you want to change from defaults

[navigation]
jumpSize = 5.0         # pixels moved per probe
tolerance = 1.0        # edges closer than this are the same line
overlap = 1.0          # how far a re-anchored probe reaches into the line it found
maxAdjustments = 100   # probes per movement
scrollMargin = 10.0    # extra scroll when the target is off screen
cellRetries = 1000     # cell restarts per key press

[host]
engine = "chrome"      # chrome, safari, firefox, webkit, gecko, blink, edge; ie or legacy for single probes

[layout]
charWidth = 8.0
lineHeight = 16.0
headingScale = 2.0
cellPaddingX = 8.0     # keep larger than jumpSize
cellPaddingY = 8.0
borderX = 8.0
borderY = 16.0
blockGap = 16.0
maxColumnWidth = 24
contentWidth = 80
asciiBorders = false

[trace]
file = ""              # write a probe trace here
verbosity = 0

[keybindings]
quit = "q"
up = "k"
down = "j"
reload = "r"
`
}

// MatchSingle reports whether input is the single-character binding.
func MatchSingle(input byte, binding string) bool {
	return len(binding) == 1 && input == binding[0]
}

// FormatError formats a configuration error for user display.
func FormatError(err error) string {
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
