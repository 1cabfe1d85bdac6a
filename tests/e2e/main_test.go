package main_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildMwBinary compiles the mw binary once per test into a temp dir.
func buildMwBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "mw")

	cmd := exec.Command("go", "build", "-o", binPath, "github.com/mindweave/mindweave/cmd/mw")
	cmd.Dir = moduleRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above test directory")
		}
		dir = parent
	}
}

func TestEndToEndVersion(t *testing.T) {
	binPath := buildMwBinary(t)

	out, err := exec.Command(binPath, "--version").CombinedOutput()
	if err != nil {
		t.Fatalf("execution failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(string(out), "mw ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestEndToEndRobotStats(t *testing.T) {
	binPath := buildMwBinary(t)

	mapPath := filepath.Join(t.TempDir(), "trip.json")
	mapJSON := `{"label":"Trip","children":[{"label":"Logistics","children":[{"label":"Flights"},{"label":"Hotels"}]},{"label":"Budget"}]}`
	if err := os.WriteFile(mapPath, []byte(mapJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := exec.Command(binPath, "--robot-stats", mapPath).Output()
	if err != nil {
		t.Fatalf("--robot-stats failed: %v", err)
	}

	var stats struct {
		NodeCount  int   `json:"node_count"`
		LeafCount  int   `json:"leaf_count"`
		MaxDepth   int   `json:"max_depth"`
		RankWidths []int `json:"rank_widths"`
	}
	if err := json.Unmarshal(out, &stats); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if stats.NodeCount != 5 || stats.LeafCount != 3 || stats.MaxDepth != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestEndToEndStructure(t *testing.T) {
	binPath := buildMwBinary(t)

	dir := t.TempDir()
	transcript := "# Weekly Plan\n- Monday\n  - Standup\n- Tuesday\n"
	transcriptPath := filepath.Join(dir, "transcript.txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "plan.json")

	out, err := exec.Command(binPath, "--structure", transcriptPath, "--out", outPath).CombinedOutput()
	if err != nil {
		t.Fatalf("--structure failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading structured map: %v", err)
	}
	var node struct {
		Label    string `json:"label"`
		Children []struct {
			Label string `json:"label"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		t.Fatalf("structured map is not valid JSON: %v", err)
	}
	if node.Label != "Weekly Plan" || len(node.Children) != 2 {
		t.Errorf("unexpected structure: %+v", node)
	}
}
