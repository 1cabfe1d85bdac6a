package mindmap

import (
	"testing"

	"pgregory.net/rapid"
)

func sampleTree() *Node {
	return &Node{
		Label: "Trip planning",
		Children: []*Node{
			{Label: "Flights", Children: []*Node{
				{Label: "Compare prices"},
				{Label: "Book outbound"},
			}},
			{Label: "Hotels", Children: []*Node{
				{Label: "Shortlist"},
			}},
			{Label: "Packing"},
		},
	}
}

// TestIdentifyPaths verifies path-based identifier construction.
func TestIdentifyPaths(t *testing.T) {
	id := Identify(sampleTree())

	if id.ID != "root" {
		t.Errorf("root id: expected %q, got %q", "root", id.ID)
	}
	if got := id.Children[1].ID; got != "root-1" {
		t.Errorf("2nd child id: expected %q, got %q", "root-1", got)
	}
	if got := id.Children[1].Children[0].ID; got != "root-1-0" {
		t.Errorf("2nd child's 1st child id: expected %q, got %q", "root-1-0", got)
	}
}

// TestIdentifyStable verifies re-running identification on an
// unchanged tree yields identical ids.
func TestIdentifyStable(t *testing.T) {
	tree := sampleTree()
	first := collectIDs(Identify(tree))
	second := collectIDs(Identify(tree))

	if len(first) != len(second) {
		t.Fatalf("id count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("id[%d] changed: %q vs %q", i, first[i], second[i])
		}
	}
}

// TestIdentifyReorderLocalized verifies that swapping two siblings
// changes only the ids of the moved subtrees, not unrelated siblings.
func TestIdentifyReorderLocalized(t *testing.T) {
	tree := sampleTree()
	tree.Children[0], tree.Children[1] = tree.Children[1], tree.Children[0]
	id := Identify(tree)

	// The unmoved third sibling keeps its id.
	if got := id.Children[2].ID; got != "root-2" {
		t.Errorf("unmoved sibling id: expected %q, got %q", "root-2", got)
	}
	// The moved subtree takes its new position's path.
	if got := id.Children[0].Label; got != "Hotels" {
		t.Fatalf("expected Hotels first after swap, got %q", got)
	}
	if got := id.Children[0].Children[0].ID; got != "root-0-0" {
		t.Errorf("moved subtree child id: expected %q, got %q", "root-0-0", got)
	}
}

// TestIdentifyDoesNotMutate verifies the source tree is untouched.
func TestIdentifyDoesNotMutate(t *testing.T) {
	tree := sampleTree()
	before := tree.Count()
	_ = Identify(tree)

	if tree.Count() != before {
		t.Error("Identify changed the source node count")
	}
	if tree.Children[0].Label != "Flights" {
		t.Error("Identify changed a source label")
	}
}

// TestIdentifyNil verifies a nil root identifies to nil.
func TestIdentifyNil(t *testing.T) {
	if Identify(nil) != nil {
		t.Error("expected nil for nil root")
	}
}

// TestParseJSONMissingChildren verifies an absent children field is
// treated as zero children, never an error.
func TestParseJSONMissingChildren(t *testing.T) {
	root, err := ParseJSON([]byte(`{"label":"solo"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Label != "solo" || len(root.Children) != 0 {
		t.Errorf("expected childless node, got %+v", root)
	}
}

// TestParseYAML verifies the YAML decoder handles nesting.
func TestParseYAML(t *testing.T) {
	data := []byte("label: root\nchildren:\n  - label: a\n  - label: b\n    children:\n      - label: b1\n")
	root, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[1].Children[0].Label != "b1" {
		t.Errorf("nested label: got %q", root.Children[1].Children[0].Label)
	}
}

// TestValidateRejectsAliasedSubtree verifies a shared subtree (not a
// strict tree) is rejected.
func TestValidateRejectsAliasedSubtree(t *testing.T) {
	shared := &Node{Label: "shared"}
	root := &Node{Label: "root", Children: []*Node{shared, shared}}

	if err := root.Validate(); err == nil {
		t.Error("expected validation error for aliased subtree")
	}
}

// TestIdentifyPropertyStable checks identifier stability over random
// trees: identifying twice always yields the same id sequence.
func TestIdentifyPropertyStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t, 0)
		a := collectIDs(Identify(tree))
		b := collectIDs(Identify(tree))
		if len(a) != len(b) {
			t.Fatalf("id count differs: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("id[%d] differs: %q vs %q", i, a[i], b[i])
			}
		}
	})
}

// genTree draws a small random tree. Depth is capped so generation
// terminates quickly.
func genTree(t *rapid.T, depth int) *Node {
	n := &Node{Label: rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "label")}
	if depth >= 3 {
		return n
	}
	count := rapid.IntRange(0, 3).Draw(t, "children")
	for i := 0; i < count; i++ {
		n.Children = append(n.Children, genTree(t, depth+1))
	}
	return n
}

func collectIDs(root *IdentifiedNode) []string {
	var ids []string
	root.Walk(func(n *IdentifiedNode, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}
