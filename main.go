// Cellnav moves a caret through the tables of an HTML document in the
// terminal, the way a rich-text editor moves it between table cells.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"cellnav/config"
	"cellnav/nav"
	"cellnav/render"
)

type options struct {
	path       string
	configPath string
	keys       string
	at         string
	printMode  bool
}

func main() {
	var opts options
	initConfig := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		takeValue := func() string {
			if hasValue {
				return value
			}
			if i+1 < len(args) {
				i++
				return args[i]
			}
			fmt.Fprintf(os.Stderr, "error: %s needs a value\n", name)
			os.Exit(2)
			return ""
		}

		switch name {
		case "-p", "--print":
			opts.printMode = true
		case "--keys":
			opts.keys = takeValue()
		case "--at":
			opts.at = takeValue()
		case "-c", "--config":
			opts.configPath = takeValue()
		case "--init-config":
			initConfig = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if opts.path == "" {
				opts.path = arg
			}
		}
	}

	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if opts.path == "" {
		printUsage()
		os.Exit(2)
	}

	var err error
	if opts.printMode || opts.keys != "" {
		err = runScript(opts, os.Stdout)
	} else {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Cellnav - caret navigation through HTML tables

Usage: cellnav [options] file.html

Options:
  --keys LIST       Press keys (e.g. "down,down,tab,shift-tab"), print each move, then the page
  --at PATH         Start the caret at a child-index path, e.g. 0/0/1/0/0:2
  -p, --print       Print the page with the caret and exit
  -c, --config FILE Use FILE instead of ~/.config/cellnav/config.toml
  --init-config     Output default config (redirect to ~/.config/cellnav/config.toml)
  -h, --help        Show this help

Keys (interactive):
  Up/Down, j/k      Move between lines and table rows
  Tab, Shift-Tab    Move between editable cells; Tab in the last cell adds a row
  r                 Reload the document
  q                 Quit

Configuration:
  Config file: ~/.config/cellnav/config.toml
  Generate with: cellnav --init-config > ~/.config/cellnav/config.toml`)
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\n\n%s", err, config.FormatError(err))
	}
	return cfg, nil
}

// traceLogger writes probe traces to the configured file. The returned
// function closes it.
func traceLogger(cfg *config.Config) (logr.Logger, func(), error) {
	if cfg.Trace.File == "" {
		return logr.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Trace.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("opening trace file: %w", err)
	}
	stdr.SetVerbosity(cfg.Trace.Verbosity)
	return stdr.New(log.New(f, "", log.LstdFlags|log.Lmicroseconds)), func() { f.Close() }, nil
}

// runScript presses the listed keys, printing the caret after each, and
// then prints the page.
func runScript(opts options, w io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := traceLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	keys, err := nav.ParseKeys(opts.keys)
	if err != nil {
		return err
	}

	// A viewport tall enough for any document keeps every probe on screen.
	s, err := newSession(cfg, opts.path, 1<<20, logger)
	if err != nil {
		return err
	}
	if opts.at != "" {
		if err := s.placeAt(opts.at); err != nil {
			return err
		}
	}

	for _, k := range keys {
		r := s.press(k)
		outcome := "-"
		if r.Outcome != nil {
			outcome = r.Outcome.String()
		}
		fmt.Fprintf(w, "%-10s %-9s %-12s %s\n", k, r.Status, s.caret(), outcome)
	}

	if opts.printMode || len(keys) == 0 {
		c := render.NewCanvas(s.pageColumns()+1, s.pageRows())
		s.draw(c, false)
		return c.WritePlain(w)
	}
	return nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := traceLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Set up terminal
	width, height, err := render.TerminalSize()
	if err != nil {
		return fmt.Errorf("detecting terminal: %w", err)
	}
	rowHeight := cfg.Layout.LineHeight
	viewport := func(rows int) float64 { return float64(rows-1) * rowHeight }

	s, err := newSession(cfg, opts.path, viewport(height), logger)
	if err != nil {
		return err
	}
	if opts.at != "" {
		if err := s.placeAt(opts.at); err != nil {
			return err
		}
	}

	term, err := render.NewTerminal(os.Stdin)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	render.EnterAltScreen(os.Stdout)
	if err := term.EnterRawMode(); err != nil {
		render.ExitAltScreen(os.Stdout)
		return fmt.Errorf("entering raw mode: %w", err)
	}

	defer func() {
		term.RestoreMode()
		render.ExitAltScreen(os.Stdout)
	}()

	var mu sync.Mutex
	canvas := render.NewCanvas(width, height)

	redraw := func() {
		s.draw(canvas, true)
		canvas.RenderTo(os.Stdout)
	}

	// Handle terminal resize
	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	defer signal.Stop(resizeCh)

	go func() {
		for range resizeCh {
			newWidth, newHeight, err := render.TerminalSize()
			if err != nil {
				continue
			}
			mu.Lock()
			if newWidth != width || newHeight != height {
				width, height = newWidth, newHeight
				canvas = render.NewCanvas(width, height)
				s.layout.SetViewportHeight(viewport(height))
			}
			redraw()
			mu.Unlock()
		}
	}()

	mu.Lock()
	redraw()
	mu.Unlock()

	// Input loop
	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if n == 0 {
			continue
		}

		if config.MatchSingle(buf[0], cfg.Keybindings.Quit) && n == 1 {
			return nil
		}

		mu.Lock()
		switch k, ok := decodeKey(buf[:n], cfg.Keybindings); {
		case ok:
			s.press(k)
		case n == 1 && config.MatchSingle(buf[0], cfg.Keybindings.Reload):
			if err := s.load(viewport(height)); err != nil {
				mu.Unlock()
				return err
			}
		}
		redraw()
		mu.Unlock()
	}
}

// decodeKey turns raw terminal input into a navigation key.
func decodeKey(b []byte, kb config.Keybindings) (nav.Key, bool) {
	if len(b) == 3 && b[0] == 27 && b[1] == '[' {
		switch b[2] {
		case 'A':
			return nav.Key{Code: nav.KeyUp}, true
		case 'B':
			return nav.Key{Code: nav.KeyDown}, true
		case 'C':
			return nav.Key{Code: nav.KeyRight}, true
		case 'D':
			return nav.Key{Code: nav.KeyLeft}, true
		case 'Z':
			return nav.Key{Code: nav.KeyTab, Shift: true}, true
		}
		return nav.Key{}, false
	}
	if len(b) != 1 {
		return nav.Key{}, false
	}
	switch {
	case b[0] == '\t':
		return nav.Key{Code: nav.KeyTab}, true
	case config.MatchSingle(b[0], kb.Up):
		return nav.Key{Code: nav.KeyUp}, true
	case config.MatchSingle(b[0], kb.Down):
		return nav.Key{Code: nav.KeyDown}, true
	}
	return nav.Key{}, false
}
