// Package mindmap defines the source tree model for a structured note
// and the deterministic identifier assignment over it.
package mindmap

import (
	"fmt"
	"strconv"
)

// Node is a source mind-map node as delivered by the structuring
// boundary: a label plus an ordered list of children. Children may be
// absent; absent and empty are treated identically.
type Node struct {
	Label    string  `json:"label" yaml:"label"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IdentifiedNode is a source node augmented with a stable path-based
// identifier. Two nodes share an ID iff they occupy the same position
// in the tree shape, so IDs survive re-identification as long as shape
// and ordering are unchanged.
type IdentifiedNode struct {
	ID       string
	Label    string
	Children []*IdentifiedNode
}

// RootID is the identifier assigned to every tree's root.
const RootID = "root"

// Identify assigns path-based identifiers to the whole tree and
// returns a new tree. The input is never mutated. The root gets
// RootID; a child appends "-<index>" to its parent's ID, so the
// root's 2nd child's 1st child is "root-1-0".
func Identify(root *Node) *IdentifiedNode {
	if root == nil {
		return nil
	}
	return identify(root, RootID)
}

func identify(n *Node, id string) *IdentifiedNode {
	out := &IdentifiedNode{ID: id, Label: n.Label}
	if len(n.Children) == 0 {
		return out
	}
	out.Children = make([]*IdentifiedNode, 0, len(n.Children))
	for i, child := range n.Children {
		if child == nil {
			continue
		}
		out.Children = append(out.Children, identify(child, id+"-"+strconv.Itoa(i)))
	}
	return out
}

// Count returns the total number of nodes in the subtree, including
// the receiver.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}

// Depth returns the maximum depth of the subtree, with a childless
// node at depth 0.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	max := 0
	for _, child := range n.Children {
		if d := child.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Validate checks that the tree is well formed: a strict tree with no
// shared subtrees and no cycles. Pointer aliasing is the only way a
// decoded tree can violate this, and it would break identifier
// stability, so it is rejected at load time.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("mind map root cannot be nil")
	}
	seen := make(map[*Node]bool)
	return n.validate(seen)
}

func (n *Node) validate(seen map[*Node]bool) error {
	if seen[n] {
		return fmt.Errorf("node %q appears in more than one position (not a strict tree)", n.Label)
	}
	seen[n] = true
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if err := child.validate(seen); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits the identified tree in pre-order, calling fn with each
// node and its depth. Walking stops early if fn returns false.
func (n *IdentifiedNode) Walk(fn func(node *IdentifiedNode, depth int) bool) {
	n.walk(0, fn)
}

func (n *IdentifiedNode) walk(depth int, fn func(*IdentifiedNode, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(depth+1, fn) {
			return false
		}
	}
	return true
}
