package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/view"
)

// WriteSVG renders the tree as an SVG document. Collapsed subtrees are
// omitted exactly as in the live view.
func WriteSVG(w io.Writer, root *mindmap.Node, collapsed view.CollapseSet, theme Theme) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	nodes, width, height := computeNodes(root, collapsed)

	canvas := svg.New(w)
	canvas.Start(int(width), int(height))
	canvas.Rect(0, 0, int(width), int(height), "fill:"+theme.Background)

	// Connectors first so node boxes paint over their endpoints.
	connStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", theme.Connector)
	for _, n := range nodes {
		if !n.HasParent {
			continue
		}
		ax := n.ParentAnchorX + margin
		ay := n.ParentAnchorY + margin
		cx := n.X + margin
		cy := n.Y + layout.NodeHeight/2 + margin
		mid := (ax + cx) / 2
		canvas.Path(fmt.Sprintf("M %.1f %.1f C %.1f %.1f %.1f %.1f %.1f %.1f",
			ax, ay, mid, ay, mid, cy, cx, cy), connStyle)
	}

	boxStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", theme.NodeFill, theme.NodeStroke)
	textStyle := fmt.Sprintf("fill:%s;font-family:monospace;font-size:13px;text-anchor:middle;dominant-baseline:central", theme.Text)
	for _, n := range nodes {
		x := int(n.X + margin)
		y := int(n.Y + margin)
		canvas.Roundrect(x, y, int(layout.NodeWidth), int(layout.NodeHeight), 8, 8, boxStyle)

		label := fitLabel(n.Label)
		if n.HasChildren && n.IsCollapsed {
			label = "▸ " + label
		}
		canvas.Text(x+int(layout.NodeWidth)/2, y+int(layout.NodeHeight)/2, label, textStyle)
	}
	canvas.End()
	return nil
}

// SaveSVG writes the SVG rendering to path.
func SaveSVG(path string, root *mindmap.Node, collapsed view.CollapseSet, theme Theme) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating svg file: %w", err)
	}
	if err := WriteSVG(f, root, collapsed, theme); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
