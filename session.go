package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"golang.org/x/net/html"

	"cellnav/caret"
	"cellnav/config"
	"cellnav/dom"
	"cellnav/layout"
	"cellnav/nav"
	"cellnav/render"
	"cellnav/vertical"
)

// session is one document with a caret moving through it.
type session struct {
	cfg      *config.Config
	path     string
	body     *html.Node
	layout   *layout.Layout
	strategy vertical.Strategy
	nav      *nav.Navigator
	sel      nav.Selection
	last     nav.Result
	lastKey  nav.Key
	log      logr.Logger
}

func newSession(cfg *config.Config, path string, viewport float64, log logr.Logger) (*session, error) {
	// The strategy depends only on the host, so it is chosen once here.
	strategy, err := vertical.ForHost(cfg.Host.Engine, cfg.Tuning(), log.WithName("vertical"))
	if err != nil {
		return nil, fmt.Errorf("choosing probe strategy: %w", err)
	}
	s := &session{cfg: cfg, path: path, strategy: strategy, log: log}
	if err := s.load(viewport); err != nil {
		return nil, err
	}
	return s, nil
}

// load parses the file and places the caret in the first cell, or at the
// start of the document when it has no tables.
func (s *session) load(viewport float64) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return err
	}
	s.body = dom.Body(doc)
	s.layout = layout.New(s.body, s.cfg.Metrics(), viewport)
	s.nav = nav.New(s.layout, s.strategy, nav.Options{
		CellRetries: s.cfg.Navigation.CellRetries,
		Logger:      s.log,
		InsertRow:   s.insertRow,
	})

	start := dom.Start(s.body)
	if cells := dom.Cells(s.body); len(cells) > 0 {
		start = dom.Start(cells[0])
	}
	s.sel = nav.Resolve(start)
	s.last = nav.Result{}
	return nil
}

// insertRow adds a row and lays the document out again so later probes
// see it.
func (s *session) insertRow(row *html.Node) *html.Node {
	added := dom.InsertRowAfter(row)
	s.layout.Reflow()
	return added
}

// placeAt moves the caret to a point written as a child-index path.
func (s *session) placeAt(at string) error {
	p, err := dom.ParsePoint(s.body, at)
	if err != nil {
		return err
	}
	s.sel = nav.Collapse(p)
	s.reveal()
	return nil
}

func (s *session) press(k nav.Key) nav.Result {
	r := s.nav.HandleKey(s.sel, k)
	s.sel = r.Selection
	s.last = r
	s.lastKey = k
	if r.Handled {
		s.reveal()
	}
	return r
}

// reveal scrolls the caret into view after moves that do not scroll by
// themselves, such as Tab.
func (s *session) reveal() {
	b, ok := caret.BoxAtPoint(s.layout, s.sel.End)
	if !ok {
		return
	}
	margin := s.cfg.Navigation.ScrollMargin
	switch h := s.layout.ViewportHeight(); {
	case b.Bottom > h:
		s.layout.ScrollBy(0, b.Bottom-h+margin)
	case b.Top < 0:
		s.layout.ScrollBy(0, b.Top-margin)
	}
}

func (s *session) caret() string {
	return dom.FormatPoint(s.body, s.sel.End)
}

// statusLine describes the caret and the last key.
func (s *session) statusLine() string {
	line := "caret " + s.caret()
	if s.last.Outcome != nil || s.last.Status != nav.Unchanged {
		line += fmt.Sprintf("  %s: %s", s.lastKey, s.last.Status)
		if s.last.Outcome != nil {
			line += " (" + s.last.Outcome.String() + ")"
		}
	}
	return line
}

func (s *session) boxStyle() render.BoxStyle {
	if s.cfg.Layout.ASCIIBorders {
		return render.ASCIIBox
	}
	return render.SingleBox
}

// draw paints the document and, when status is set, a status line on the
// last row.
func (s *session) draw(c *render.Canvas, status bool) {
	c.Clear()
	s.layout.Draw(c, s.boxStyle(), s.sel.End)
	if status {
		y := c.Height() - 1
		c.DrawHLine(0, y, c.Width(), ' ', render.Style{Reverse: true})
		c.WriteString(0, y, render.TruncateToWidth(s.statusLine(), c.Width()), render.Style{Reverse: true})
	}
}

// pageRows is the number of terminal rows the whole document needs.
func (s *session) pageRows() int {
	m := s.layout.Metrics()
	return int(s.layout.Height()/m.LineHeight) + 1
}

func (s *session) pageColumns() int {
	return s.cfg.Layout.ContentWidth
}
