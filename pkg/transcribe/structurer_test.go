package transcribe

import (
	"context"
	"strings"
	"testing"
)

// TestOutlineBasic verifies title and nesting extraction.
func TestOutlineBasic(t *testing.T) {
	transcript := strings.Join([]string{
		"# Launch checklist",
		"- Marketing",
		"  - Draft announcement",
		"  - Schedule posts",
		"- Engineering",
		"  - Tag release",
	}, "\n")

	res, err := OutlineStructurer{}.Structure(context.Background(), transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Map.Label != "Launch checklist" {
		t.Errorf("root label: got %q", res.Map.Label)
	}
	if len(res.Map.Children) != 2 {
		t.Fatalf("expected 2 top-level branches, got %d", len(res.Map.Children))
	}
	if got := res.Map.Children[0].Children[1].Label; got != "Schedule posts" {
		t.Errorf("nested bullet: got %q", got)
	}
	if res.Document.Title != "Launch checklist" {
		t.Errorf("document title: got %q", res.Document.Title)
	}
	if !strings.Contains(res.Document.Markdown, "## Marketing") {
		t.Errorf("document should contain a Marketing heading:\n%s", res.Document.Markdown)
	}
}

// TestOutlineOverIndent verifies an over-indented bullet attaches to
// the deepest open node instead of erroring.
func TestOutlineOverIndent(t *testing.T) {
	transcript := "- a\n        - way too deep\n"
	res, err := OutlineStructurer{}.Structure(context.Background(), transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := res.Map.Children[0]
	if len(a.Children) != 1 || a.Children[0].Label != "way too deep" {
		t.Errorf("over-indented bullet should attach under %q, got %+v", a.Label, a.Children)
	}
}

// TestOutlineNoBullets verifies prose-only input is an error, not a
// degenerate tree.
func TestOutlineNoBullets(t *testing.T) {
	if _, err := (OutlineStructurer{}).Structure(context.Background(), "just some prose"); err == nil {
		t.Error("expected error for input with no bullets")
	}
}

// TestOutlineFreshTreePerCall verifies each call returns a distinct
// tree object, the identity-comparison contract for reload detection.
func TestOutlineFreshTreePerCall(t *testing.T) {
	a, err := OutlineStructurer{}.Structure(context.Background(), "- x")
	if err != nil {
		t.Fatal(err)
	}
	b, err := OutlineStructurer{}.Structure(context.Background(), "- x")
	if err != nil {
		t.Fatal(err)
	}
	if a.Map == b.Map {
		t.Error("expected a fresh tree object per call")
	}
}
