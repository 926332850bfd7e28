// Debug tool to analyze table navigation in an HTML file. It prints the
// cell structure with child-index paths, then probes up and down from the
// first and last caret position of every cell and reports each outcome.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/net/html"

	"cellnav/config"
	"cellnav/dom"
	"cellnav/layout"
	"cellnav/nav"
	"cellnav/vertical"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debug file.html [engine]")
		os.Exit(2)
	}

	cfg := config.Default()
	if len(os.Args) > 2 {
		cfg.Host.Engine = os.Args[2]
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		fmt.Println("Parse error:", err)
		return
	}

	body := dom.Body(doc)
	if body == nil {
		fmt.Println("No body found!")
		return
	}

	strategy, err := vertical.ForHost(cfg.Host.Engine, cfg.Tuning(), logr.Discard())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	lay := layout.New(body, cfg.Metrics(), 1<<20)
	n := nav.New(lay, strategy, nav.Options{CellRetries: cfg.Navigation.CellRetries})

	fmt.Println("Structure:")
	analyzeNode(body, body, 0, 8)

	fmt.Println()
	fmt.Println("Probes:")
	for _, cell := range dom.Cells(body) {
		probeCell(n, body, cell)
	}
}

func analyzeNode(root, n *html.Node, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	indent := strings.Repeat("  ", depth)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsElement(c):
			path := dom.FormatPoint(root, dom.Start(c))
			fmt.Printf("%s<%s> %s\n", indent, c.Data, strings.TrimSuffix(path, ":0"))
			analyzeNode(root, c, depth+1, maxDepth)
		case dom.IsText(c) && !dom.IsWhitespace(c):
			text := c.Data
			if len(text) > 30 {
				text = text[:30] + "..."
			}
			fmt.Printf("%s%q\n", indent, text)
		}
	}
}

func probeCell(n *nav.Navigator, root, cell *html.Node) {
	start := nav.Resolve(dom.Start(cell)).End
	end := nav.Resolve(dom.End(cell)).End

	for _, probe := range []struct {
		from dom.Point
		dir  vertical.Direction
	}{
		{start, vertical.Up},
		{end, vertical.Down},
	} {
		p, out := n.Step(probe.from, probe.dir)
		landed := "-"
		if !p.IsZero() {
			landed = dom.FormatPoint(root, p)
		}
		moved := n.Vertical(nav.Collapse(probe.from), probe.dir)
		fmt.Printf("  %-14s %-5s step %-14s %-22s scan %-9s %s\n",
			dom.FormatPoint(root, probe.from), probe.dir, landed, out,
			moved.Status, dom.FormatPoint(root, moved.Selection.End))
	}
}
