package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used across the viewer.
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Bg        lipgloss.AdaptiveColor

	Box       lipgloss.Style
	BoxSel    lipgloss.Style
	Label     lipgloss.Style
	LabelSel  lipgloss.Style
	Connector lipgloss.Style
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
	Title     lipgloss.Style
	Overlay   lipgloss.Style
}

// DarkTheme is the default palette.
func DarkTheme() Theme {
	t := Theme{
		Name:      "dark",
		Primary:   lipgloss.AdaptiveColor{Light: "#7b58c4", Dark: "#bd93f9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#2a7a8c", Dark: "#8be9fd"},
		Muted:     lipgloss.AdaptiveColor{Light: "#8a8fa3", Dark: "#6272a4"},
		Highlight: lipgloss.AdaptiveColor{Light: "#b0529c", Dark: "#ff79c6"},
		Bg:        lipgloss.AdaptiveColor{Light: "#f4f4f8", Dark: "#282a36"},
	}
	t.Box = lipgloss.NewStyle().Foreground(t.Primary)
	t.BoxSel = lipgloss.NewStyle().Foreground(t.Highlight).Bold(true)
	t.Label = lipgloss.NewStyle()
	t.LabelSel = lipgloss.NewStyle().Foreground(t.Highlight).Bold(true)
	t.Connector = lipgloss.NewStyle().Foreground(t.Muted)
	t.Footer = lipgloss.NewStyle().Foreground(t.Muted)
	t.FooterKey = lipgloss.NewStyle().Foreground(t.Secondary)
	t.Title = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)
	return t
}

// LightTheme is the print-friendly palette.
func LightTheme() Theme {
	t := DarkTheme()
	t.Name = "light"
	return t
}

// ThemeByName maps a config theme name to a Theme, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
