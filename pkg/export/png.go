package export

import (
	"fmt"

	"git.sr.ht/~sbinet/gg"

	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/view"
)

// SavePNG rasterizes the tree to a PNG file. scale multiplies the
// layout units into pixels; values above 1 give sharper output on
// high-density displays.
func SavePNG(path string, root *mindmap.Node, collapsed view.CollapseSet, theme Theme, scale float64) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	if scale <= 0 {
		scale = 1.0
	}
	nodes, width, height := computeNodes(root, collapsed)

	dc := gg.NewContext(int(width*scale), int(height*scale))
	dc.Scale(scale, scale)

	dc.SetHexColor(theme.Background)
	dc.Clear()

	dc.SetHexColor(theme.Connector)
	dc.SetLineWidth(2)
	for _, n := range nodes {
		if !n.HasParent {
			continue
		}
		ax := n.ParentAnchorX + margin
		ay := n.ParentAnchorY + margin
		cx := n.X + margin
		cy := n.Y + layout.NodeHeight/2 + margin
		mid := (ax + cx) / 2
		dc.MoveTo(ax, ay)
		dc.CubicTo(mid, ay, mid, cy, cx, cy)
		dc.Stroke()
	}

	for _, n := range nodes {
		x := n.X + margin
		y := n.Y + margin

		dc.SetHexColor(theme.NodeFill)
		dc.DrawRoundedRectangle(x, y, layout.NodeWidth, layout.NodeHeight, 8)
		dc.FillPreserve()
		dc.SetHexColor(theme.NodeStroke)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		label := fitLabel(n.Label)
		if n.HasChildren && n.IsCollapsed {
			label = "+ " + label
		}
		dc.SetHexColor(theme.Text)
		dc.DrawStringAnchored(label, x+layout.NodeWidth/2, y+layout.NodeHeight/2, 0.5, 0.5)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
