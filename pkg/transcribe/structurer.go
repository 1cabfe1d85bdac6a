// Package transcribe defines the boundary to the transcription and
// structuring service: something that turns a transcript into a formal
// document plus a mind-map tree. The remote implementation lives
// outside this repository; OutlineStructurer is a deterministic local
// implementation over indented outlines so the tool works offline.
package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/mindweave/mindweave/pkg/mindmap"
)

// Document is the formal write-up produced alongside the mind map.
type Document struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// Result pairs the document with its mind-map tree. Each call
// produces a fresh tree object; callers may rely on identity
// comparison to detect a new result.
type Result struct {
	Document Document
	Map      *mindmap.Node
}

// Structurer converts a raw transcript into a structured result.
type Structurer interface {
	Structure(ctx context.Context, transcript string) (*Result, error)
}

// OutlineStructurer parses markdown-style outlines: an optional "# "
// title line, then "-"/"*" bullets whose indentation depth (two
// spaces or one tab per level) defines the hierarchy.
type OutlineStructurer struct{}

// Structure implements Structurer. It never calls out anywhere.
func (OutlineStructurer) Structure(_ context.Context, transcript string) (*Result, error) {
	lines := strings.Split(transcript, "\n")

	root := &mindmap.Node{Label: "Notes"}
	// stack[d] is the most recent node at outline depth d; bullets
	// attach to stack[depth].
	stack := []*mindmap.Node{root}
	sawBullet := false

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		if line == "" {
			continue
		}

		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok && !sawBullet {
			root.Label = strings.TrimSpace(title)
			continue
		}

		indent, rest := splitIndent(line)
		label, ok := cutBullet(rest)
		if !ok {
			// Prose between bullets: fold into the root label if the
			// outline has no title yet, otherwise skip.
			continue
		}
		sawBullet = true

		depth := indent + 1 // bullets start one level under the root
		if depth > len(stack) {
			depth = len(stack) // over-indented bullet attaches to the deepest open node
		}
		parent := stack[depth-1]
		node := &mindmap.Node{Label: label}
		parent.Children = append(parent.Children, node)
		stack = append(stack[:depth], node)
	}

	if !sawBullet {
		return nil, fmt.Errorf("transcript contains no outline bullets")
	}

	doc := Document{
		Title:    root.Label,
		Markdown: renderDocument(root),
	}
	return &Result{Document: doc, Map: root}, nil
}

// splitIndent counts leading indentation levels: one tab or two
// spaces per level.
func splitIndent(line string) (int, string) {
	levels := 0
	for {
		switch {
		case strings.HasPrefix(line, "\t"):
			line = line[1:]
			levels++
		case strings.HasPrefix(line, "  "):
			line = line[2:]
			levels++
		default:
			return levels, line
		}
	}
}

func cutBullet(s string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if rest, ok := strings.CutPrefix(s, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// renderDocument flattens the tree into a formal markdown document:
// top levels become headings, deeper levels bullets.
func renderDocument(root *mindmap.Node) string {
	var sb strings.Builder
	sb.WriteString("# " + root.Label + "\n")
	for _, child := range root.Children {
		renderSection(&sb, child, 0)
	}
	return sb.String()
}

func renderSection(sb *strings.Builder, n *mindmap.Node, depth int) {
	if depth < 2 {
		sb.WriteString("\n" + strings.Repeat("#", depth+2) + " " + n.Label + "\n")
	} else {
		sb.WriteString(strings.Repeat("  ", depth-2) + "- " + n.Label + "\n")
	}
	for _, child := range n.Children {
		renderSection(sb, child, depth+1)
	}
}
