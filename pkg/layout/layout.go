// Package layout computes 2-D positions for the visible portion of an
// identified mind-map tree. Horizontal position is a pure function of
// depth (a rank layout); vertical position comes from a single cursor
// threaded through one pre-order pass, so sibling subtrees never
// overlap.
package layout

import (
	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/view"
)

// Geometry constants shared by the layout engine and every renderer.
// The defaults match the exported diagram dimensions; terminal
// renderers scale them down per cell.
const (
	NodeWidth     = 160.0
	NodeHeight    = 50.0
	HorizontalGap = 200.0
	VerticalGap   = 30.0
)

// Node is one laid-out visible node. The sequence order produced by
// Compute is pre-order traversal order and is a z-order hint only.
type Node struct {
	ID    string
	Label string
	X     float64
	Y     float64

	// Connector anchor on the parent's right-center edge. Unset
	// (HasParent=false) for the root.
	HasParent     bool
	ParentAnchorX float64
	ParentAnchorY float64

	HasChildren bool
	IsCollapsed bool
}

// positioned is the internal computed-node variant used between the
// positioning pass and the flatten pass. It keeps child references the
// public Node must not carry and is discarded after flattening.
type positioned struct {
	src       *mindmap.IdentifiedNode
	x, y      float64
	collapsed bool
	children  []*positioned
}

// Compute lays out the visible nodes of the tree under the given
// collapse set. A node is visible iff none of its ancestors are
// collapsed; a collapsed node is itself visible but its subtree
// consumes no vertical space. Identical inputs always produce
// identical output. Returns nil for a nil root.
func Compute(root *mindmap.IdentifiedNode, collapsed view.CollapseSet) []Node {
	if root == nil {
		return nil
	}
	cursor := 0.0
	top := position(root, 0, &cursor, collapsed)

	out := make([]Node, 0, countVisible(top))
	flatten(top, nil, &out)
	return out
}

// position assigns coordinates in a single pre-order pass. The cursor
// is shared across the whole traversal and only ever advances. A
// collapsed node with children is placed exactly like a leaf.
func position(n *mindmap.IdentifiedNode, depth int, cursor *float64, collapsed view.CollapseSet) *positioned {
	p := &positioned{
		src:       n,
		x:         float64(depth) * HorizontalGap,
		collapsed: collapsed.Contains(n.ID),
	}

	if len(n.Children) == 0 || p.collapsed {
		p.y = *cursor
		*cursor += NodeHeight + VerticalGap
		return p
	}

	p.children = make([]*positioned, 0, len(n.Children))
	for _, child := range n.Children {
		p.children = append(p.children, position(child, depth+1, cursor, collapsed))
	}
	// Center on the vertical extent of the immediate children: only
	// the first and last matter, so uneven subtree heights still
	// center correctly.
	first := p.children[0].y
	last := p.children[len(p.children)-1].y
	p.y = (first + last) / 2
	return p
}

// flatten emits the positioned tree in pre-order. Children of a
// collapsed node are excluded from the output entirely, not merely
// hidden.
func flatten(p *positioned, parent *positioned, out *[]Node) {
	node := Node{
		ID:          p.src.ID,
		Label:       p.src.Label,
		X:           p.x,
		Y:           p.y,
		HasChildren: len(p.src.Children) > 0,
		IsCollapsed: p.collapsed,
	}
	if parent != nil {
		node.HasParent = true
		node.ParentAnchorX = parent.x + NodeWidth
		node.ParentAnchorY = parent.y + NodeHeight/2
	}
	*out = append(*out, node)

	if p.collapsed {
		return
	}
	for _, child := range p.children {
		flatten(child, p, out)
	}
}

func countVisible(p *positioned) int {
	if p.collapsed || len(p.children) == 0 {
		return 1
	}
	total := 1
	for _, child := range p.children {
		total += countVisible(child)
	}
	return total
}

// Bounds returns the bounding box of a laid-out node list in layout
// space, including node extents. Exporters use it to size their
// canvas. Returns zeros for an empty list.
func Bounds(nodes []Node) (minX, minY, maxX, maxY float64) {
	if len(nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = nodes[0].X, nodes[0].Y
	maxX, maxY = nodes[0].X+NodeWidth, nodes[0].Y+NodeHeight
	for _, n := range nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if x := n.X + NodeWidth; x > maxX {
			maxX = x
		}
		if y := n.Y + NodeHeight; y > maxY {
			maxY = y
		}
	}
	return minX, minY, maxX, maxY
}
