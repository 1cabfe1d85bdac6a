package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// PickerEntry is one selectable map file.
type PickerEntry struct {
	Path  string
	Label string // display label; falls back to Path when empty
}

// PickFile prompts for a map file with a standalone select form. It is
// used when the viewer starts without a file argument. Recently opened
// files come first, followed by discovered ones.
func PickFile(entries []PickerEntry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no map files found")
	}
	if len(entries) == 1 {
		return entries[0].Path, nil
	}

	options := make([]huh.Option[string], len(entries))
	for i, e := range entries {
		label := e.Label
		if label == "" {
			label = e.Path
		}
		options[i] = huh.NewOption(label, e.Path)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Open a mind map").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("picking file: %w", err)
	}
	return selected, nil
}
