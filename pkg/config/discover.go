package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverConfig controls where DiscoverMapFiles looks for maps
// beyond the working directory.
type DiscoverConfig struct {
	// ScanPaths are extra directories to scan, "~" expanded.
	ScanPaths []string `yaml:"scan_paths,omitempty"`
	// MaxDepth limits how deep each scan path is walked (default 3).
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// mapExtensions are the file extensions treated as mind-map sources.
var mapExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// DiscoverMapFiles scans the configured paths for map files, sorted
// and deduplicated. Hidden directories are skipped.
func DiscoverMapFiles(cfg DiscoverConfig) []string {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}

	seen := make(map[string]bool)
	var results []string
	for _, scanPath := range cfg.ScanPaths {
		for _, p := range scanForMaps(scanPath, maxDepth) {
			if !seen[p] {
				seen[p] = true
				results = append(results, p)
			}
		}
	}
	sort.Strings(results)
	return results
}

// scanForMaps walks a directory tree up to maxDepth levels deep,
// collecting files with a map extension.
func scanForMaps(root string, maxDepth int) []string {
	root = expandHome(root)
	var results []string

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}

		name := d.Name()
		if d.IsDir() {
			currentDepth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
			if currentDepth > maxDepth {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") && path != filepath.Clean(root) {
				return filepath.SkipDir
			}
			return nil
		}

		if mapExtensions[strings.ToLower(filepath.Ext(name))] {
			results = append(results, path)
		}
		return nil
	})

	return results
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
