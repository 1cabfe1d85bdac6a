package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# Keys

| Key | Action |
|---|---|
| drag | pan the diagram |
| wheel / pinch | zoom (10% – 500%) |
| click | fold or unfold a node |
| arrows / hjkl | pan |
| + / - | zoom |
| n / p, tab | cycle node selection |
| enter / space | fold the selected node |
| r | reset view and folds |
| e | export svg, png, html, md |
| y | copy outline to clipboard |
| ? | toggle this help |
| q | quit |

Folding hides a node's subtree; the node itself stays visible with a
▸ marker. Reset restores the initial view and unfolds everything.
`

// helpView renders the key reference as a centered overlay.
func (m Model) helpView() string {
	wrap := m.width - 12
	if wrap > 72 {
		wrap = 72
	}
	if wrap < 24 {
		wrap = 24
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	content := helpMarkdown
	if err == nil {
		if rendered, rerr := r.Render(helpMarkdown); rerr == nil {
			content = rendered
		}
	}

	box := m.theme.Overlay.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
