// Package analysis computes structural statistics over a mind-map
// tree, surfaced through the robot (JSON) interface so agents can
// judge a map's shape without parsing it.
package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mindweave/mindweave/pkg/mindmap"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	NodeCount int `json:"node_count"`
	LeafCount int `json:"leaf_count"`
	MaxDepth  int `json:"max_depth"`

	// RankWidths[d] is the number of nodes at depth d.
	RankWidths []int `json:"rank_widths"`
	WidestRank int   `json:"widest_rank"`

	// Branching statistics over internal (non-leaf) nodes.
	BranchingMean   float64 `json:"branching_mean"`
	BranchingStdDev float64 `json:"branching_std_dev"`
	MaxBranching    int     `json:"max_branching"`
}

// Analyze computes statistics for the tree rooted at root. A nil root
// yields zero stats.
func Analyze(root *mindmap.Node) Stats {
	if root == nil {
		return Stats{}
	}

	var s Stats
	var branching []float64
	walk(root, 0, &s, &branching)

	s.WidestRank = 0
	for d, w := range s.RankWidths {
		if w > s.RankWidths[s.WidestRank] {
			s.WidestRank = d
		}
	}
	s.MaxDepth = len(s.RankWidths) - 1

	if len(branching) > 0 {
		s.BranchingMean = stat.Mean(branching, nil)
		if len(branching) > 1 {
			s.BranchingStdDev = stat.StdDev(branching, nil)
		}
	}
	return s
}

func walk(n *mindmap.Node, depth int, s *Stats, branching *[]float64) {
	s.NodeCount++
	for len(s.RankWidths) <= depth {
		s.RankWidths = append(s.RankWidths, 0)
	}
	s.RankWidths[depth]++

	if len(n.Children) == 0 {
		s.LeafCount++
		return
	}

	*branching = append(*branching, float64(len(n.Children)))
	if len(n.Children) > s.MaxBranching {
		s.MaxBranching = len(n.Children)
	}
	for _, child := range n.Children {
		walk(child, depth+1, s, branching)
	}
}
