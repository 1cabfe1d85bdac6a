// Package loader reads mind-map files from disk and watches them for
// changes.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mindweave/mindweave/pkg/mindmap"
)

// LoadMap reads and decodes a mind map from path. The decoder is
// chosen by extension (.yaml/.yml vs JSON).
func LoadMap(path string) (*mindmap.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mind map %s: %w", path, err)
	}
	root, err := mindmap.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return root, nil
}

// mapExtensions are the file extensions DiscoverMaps considers.
var mapExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// DiscoverMaps lists candidate mind-map files directly under dir,
// sorted by name. Files that fail to decode are skipped silently; the
// picker only offers maps that will actually open.
func DiscoverMaps(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !mapExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		path := filepath.Join(dir, name)
		if _, err := LoadMap(path); err != nil {
			continue
		}
		found = append(found, path)
	}
	sort.Strings(found)
	return found
}
