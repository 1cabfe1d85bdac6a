package mindmap

import (
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a mind map from JSON. The expected shape is
// {"label": ..., "children": [...]}; a missing or empty children
// field yields a leaf.
func ParseJSON(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse mind map JSON: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return &root, nil
}

// ParseYAML decodes a mind map from YAML with the same shape as the
// JSON form.
func ParseYAML(data []byte) (*Node, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse mind map YAML: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return &root, nil
}

// Parse decodes a mind map, choosing the decoder from the file
// extension. ".yaml"/".yml" selects YAML, everything else JSON.
func Parse(path string, data []byte) (*Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// Encode serializes the node tree to indented JSON, for round-tripping
// structurer output to disk.
func (n *Node) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode mind map: %w", err)
	}
	return data, nil
}
