// Package export renders a laid-out mind map to static formats (SVG,
// PNG, Markdown) and to a self-contained interactive HTML page.
package export

import (
	"github.com/mattn/go-runewidth"

	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/view"
)

// Theme holds the colors used by the graphical exporters.
type Theme struct {
	Background string
	NodeFill   string
	NodeStroke string
	Text       string
	Connector  string
}

// DarkTheme is the default palette.
var DarkTheme = Theme{
	Background: "#282a36",
	NodeFill:   "#44475a",
	NodeStroke: "#bd93f9",
	Text:       "#f8f8f2",
	Connector:  "#6272a4",
}

// LightTheme is the alternative palette for print-friendly output.
var LightTheme = Theme{
	Background: "#ffffff",
	NodeFill:   "#f0f0f5",
	NodeStroke: "#6272a4",
	Text:       "#21222c",
	Connector:  "#9aa0b8",
}

// ThemeByName maps a config theme name to a palette, defaulting to
// dark for unknown names.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme
	}
	return DarkTheme
}

const (
	// margin is the padding around the drawing in layout units.
	margin = 40.0

	// maxLabelCells caps how many terminal-width cells of a label the
	// graphical exporters draw inside a node box.
	maxLabelCells = 18
)

// fitLabel truncates a label to the node box, ellipsized. Width is
// measured in display cells so wide runes count double.
func fitLabel(label string) string {
	return runewidth.Truncate(label, maxLabelCells, "…")
}

// computeNodes lays out the tree with the given collapse state and
// returns the flattened nodes plus the drawing size in layout units.
func computeNodes(root *mindmap.Node, collapsed view.CollapseSet) ([]layout.Node, float64, float64) {
	nodes := layout.Compute(mindmap.Identify(root), collapsed)
	_, _, maxX, maxY := layout.Bounds(nodes)
	return nodes, maxX + 2*margin, maxY + 2*margin
}
