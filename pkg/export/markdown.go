package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mindweave/mindweave/pkg/mindmap"
)

// GenerateMarkdown renders the tree as a formal outline document. The
// root becomes the title, its children become sections, and deeper
// levels become nested bullets.
func GenerateMarkdown(root *mindmap.Node, title string) (string, error) {
	if root == nil {
		return "", fmt.Errorf("no tree to export")
	}
	if title == "" {
		title = root.Label
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	for _, section := range root.Children {
		sb.WriteString(fmt.Sprintf("## %s\n\n", section.Label))
		for _, child := range section.Children {
			writeBullets(&sb, child, 0)
		}
		if len(section.Children) > 0 {
			sb.WriteString("\n")
		}
	}

	// A root with no children still produces a valid document.
	if len(root.Children) == 0 {
		sb.WriteString("_Empty map._\n")
	}
	return sb.String(), nil
}

func writeBullets(sb *strings.Builder, n *mindmap.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("- " + n.Label + "\n")
	for _, child := range n.Children {
		writeBullets(sb, child, depth+1)
	}
}

// SaveMarkdown writes the generated document to filename.
func SaveMarkdown(filename string, root *mindmap.Node, title string) error {
	content, err := GenerateMarkdown(root, title)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(content), 0o644)
}
