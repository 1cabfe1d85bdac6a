// canvas.go - renders the laid-out mind map into a terminal cell grid,
// applying the current pan/zoom transform.
package ui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/view"
)

// Layout coordinates are abstract units; one terminal cell covers
// roughly 10x20 units so a node box keeps a plausible aspect ratio.
const (
	CellUnitX = 10.0
	CellUnitY = 20.0

	// boxRows is the fixed height of a rendered node box. Zoom changes
	// box width and spacing, not row count, so labels stay readable at
	// any scale.
	boxRows = 3

	minBoxCols = 6
)

type cellClass uint8

const (
	classEmpty cellClass = iota
	classConn
	classBox
	classBoxSel
	classText
	classTextSel
)

// Canvas is a fixed-size cell grid the diagram is drawn into.
type Canvas struct {
	width, height int
	runes         [][]rune
	classes       [][]cellClass
	theme         Theme
}

// NewCanvas creates an empty canvas of the given terminal size.
func NewCanvas(width, height int, theme Theme) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{width: width, height: height, theme: theme}
	c.runes = make([][]rune, height)
	c.classes = make([][]cellClass, height)
	for y := range c.runes {
		c.runes[y] = make([]rune, width)
		c.classes[y] = make([]cellClass, width)
		for x := range c.runes[y] {
			c.runes[y][x] = ' '
		}
	}
	return c
}

func (c *Canvas) set(x, y int, r rune, class cellClass) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.classes[y][x] = class
}

// cellOf maps a world coordinate through the transform into a cell.
func cellOf(tf view.Transform, wx, wy float64) (int, int) {
	sx, sy := tf.Apply(wx, wy)
	return int(math.Floor(sx / CellUnitX)), int(math.Floor(sy / CellUnitY))
}

// Draw renders the flattened layout with the given transform. The
// selected id, if present, is highlighted.
func (c *Canvas) Draw(nodes []layout.Node, tf view.Transform, selectedID string) {
	// Connectors first; boxes overwrite their endpoints.
	for _, n := range nodes {
		if !n.HasParent {
			continue
		}
		ax, ay := cellOf(tf, n.ParentAnchorX, n.ParentAnchorY)
		cx, cy := cellOf(tf, n.X, n.Y+layout.NodeHeight/2)
		c.drawConnector(ax, ay, cx, cy)
	}
	for _, n := range nodes {
		c.drawNode(n, tf, n.ID == selectedID)
	}
}

// drawConnector draws an elbow from the parent anchor to the child's
// left edge: horizontal, then vertical, then horizontal.
func (c *Canvas) drawConnector(ax, ay, cx, cy int) {
	midX := (ax + cx) / 2
	if midX <= ax {
		midX = ax + 1
	}
	for x := ax; x < midX; x++ {
		c.set(x, ay, '─', classConn)
	}
	if ay == cy {
		for x := midX; x < cx; x++ {
			c.set(x, ay, '─', classConn)
		}
		return
	}
	step := 1
	if cy < ay {
		step = -1
	}
	corner, elbow := '╮', '╰'
	if step < 0 {
		corner, elbow = '╯', '╭'
	}
	c.set(midX, ay, corner, classConn)
	for y := ay + step; y != cy; y += step {
		c.set(midX, y, '│', classConn)
	}
	c.set(midX, cy, elbow, classConn)
	for x := midX + 1; x < cx; x++ {
		c.set(x, cy, '─', classConn)
	}
}

// boxGeometry returns the cell rectangle a node occupies.
func boxGeometry(n layout.Node, tf view.Transform) (col, row, cols, rows int) {
	col, row = cellOf(tf, n.X, n.Y)
	cols = int(math.Round(layout.NodeWidth * tf.Scale / CellUnitX))
	if cols < minBoxCols {
		cols = minBoxCols
	}
	return col, row, cols, boxRows
}

func (c *Canvas) drawNode(n layout.Node, tf view.Transform, selected bool) {
	col, row, cols, rows := boxGeometry(n, tf)

	boxClass, textClass := classBox, classText
	if selected {
		boxClass, textClass = classBoxSel, classTextSel
	}

	c.set(col, row, '╭', boxClass)
	c.set(col+cols-1, row, '╮', boxClass)
	c.set(col, row+rows-1, '╰', boxClass)
	c.set(col+cols-1, row+rows-1, '╯', boxClass)
	for x := col + 1; x < col+cols-1; x++ {
		c.set(x, row, '─', boxClass)
		c.set(x, row+rows-1, '─', boxClass)
	}
	for y := row + 1; y < row+rows-1; y++ {
		c.set(col, y, '│', boxClass)
		c.set(col+cols-1, y, '│', boxClass)
		for x := col + 1; x < col+cols-1; x++ {
			c.set(x, y, ' ', classEmpty)
		}
	}

	label := affordance(n) + " " + n.Label
	label = runewidth.Truncate(label, cols-2, "…")
	x := col + 1
	for _, r := range label {
		c.set(x, row+1, r, textClass)
		x += runewidth.RuneWidth(r)
	}
}

// affordance returns the fold indicator for a node: ▸ collapsed,
// ▾ expanded, • leaf.
func affordance(n layout.Node) string {
	if !n.HasChildren {
		return "•"
	}
	if n.IsCollapsed {
		return "▸"
	}
	return "▾"
}

// Render flushes the grid to a styled string, one line per row.
// Adjacent cells with the same class render in one style run.
func (c *Canvas) Render() string {
	styleFor := map[cellClass]func(...string) string{
		classEmpty:   func(s ...string) string { return strings.Join(s, "") },
		classConn:    c.theme.Connector.Render,
		classBox:     c.theme.Box.Render,
		classBoxSel:  c.theme.BoxSel.Render,
		classText:    c.theme.Label.Render,
		classTextSel: c.theme.LabelSel.Render,
	}

	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		x := 0
		for x < c.width {
			class := c.classes[y][x]
			start := x
			for x < c.width && c.classes[y][x] == class {
				x++
			}
			run := string(c.runes[y][start:x])
			sb.WriteString(styleFor[class](run))
		}
		if y < c.height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// NodeAt hit-tests a cell coordinate against the drawn nodes and
// returns the topmost match. Later nodes paint over earlier ones, so
// the scan runs back to front.
func NodeAt(nodes []layout.Node, tf view.Transform, cellX, cellY int) (layout.Node, bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		col, row, cols, rows := boxGeometry(nodes[i], tf)
		if cellX >= col && cellX < col+cols && cellY >= row && cellY < row+rows {
			return nodes[i], true
		}
	}
	return layout.Node{}, false
}
