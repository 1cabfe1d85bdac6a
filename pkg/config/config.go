// Package config loads viewer configuration from YAML, merging a
// project-local file over the user's global one. A missing or
// corrupt file degrades to defaults with a warning rather than
// failing startup.
package config

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings. Layout geometry is fixed; only
// presentation and export behavior are configurable.
type Config struct {
	// Theme selects a named color theme: "dark" (default) or "light".
	Theme string `yaml:"theme,omitempty"`

	// Watch enables live reload of the opened map file.
	Watch *bool `yaml:"watch,omitempty"`

	Export ExportConfig `yaml:"export,omitempty"`

	// Discovery lists extra directories scanned for map files when the
	// viewer starts without a file argument.
	Discovery DiscoverConfig `yaml:"discovery,omitempty"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	// Dir is the default output directory for exports ("." if empty).
	Dir string `yaml:"dir,omitempty"`
	// PNGScale multiplies the raster export resolution (default 1.0).
	PNGScale float64 `yaml:"png_scale,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	watch := true
	return Config{
		Theme: "dark",
		Watch: &watch,
		Export: ExportConfig{
			Dir:      ".",
			PNGScale: 1.0,
		},
	}
}

// localConfigPath is the project-local configuration file, relative
// to the working directory.
const localConfigPath = ".mindweave/config.yaml"

// Load reads configuration with the discovery order: project-local
// .mindweave/config.yaml, then ~/.config/mindweave/config.yaml, then
// defaults. The first file found wins; files are not merged.
func Load() Config {
	for _, path := range searchPaths() {
		cfg, ok := loadFile(path)
		if ok {
			return cfg
		}
	}
	return Default()
}

func searchPaths() []string {
	paths := []string{localConfigPath}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mindweave", "config.yaml"))
	}
	return paths
}

func loadFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("warning: invalid config %s, using defaults: %v", path, err)
		return Default(), true
	}
	return cfg.normalized(), true
}

// normalized fills zero values back in with defaults so a partial
// file behaves predictably.
func (c Config) normalized() Config {
	def := Default()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Watch == nil {
		c.Watch = def.Watch
	}
	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
	if c.Export.PNGScale <= 0 {
		c.Export.PNGScale = def.Export.PNGScale
	}
	return c
}

// WatchEnabled reports whether live reload is on.
func (c Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}
