package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindweave/mindweave/pkg/analysis"
	"github.com/mindweave/mindweave/pkg/config"
	"github.com/mindweave/mindweave/pkg/export"
	"github.com/mindweave/mindweave/pkg/history"
	"github.com/mindweave/mindweave/pkg/loader"
	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/transcribe"
	"github.com/mindweave/mindweave/pkg/ui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	themeName := flag.String("theme", "", "Color theme: dark or light (overrides config)")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when the map file changes")
	exportSVG := flag.String("export-svg", "", "Render the map to an SVG file and exit")
	exportPNG := flag.String("export-png", "", "Render the map to a PNG file and exit")
	exportHTML := flag.String("export-html", "", "Render the map to a self-contained interactive HTML file and exit")
	exportMD := flag.String("export-md", "", "Export the map as a Markdown outline and exit")
	exportAll := flag.Bool("export-all", false, "Export all formats to the configured export directory and exit")
	pngScale := flag.Float64("png-scale", 0, "Pixel scale for PNG export (overrides config)")
	structureFile := flag.String("structure", "", "Turn a transcript file into a mind map (JSON to stdout)")
	structureOut := flag.String("out", "", "Write --structure output to a file instead of stdout")
	robotStats := flag.Bool("robot-stats", false, "Output tree statistics as JSON for AI agents")
	robotHelp := flag.Bool("robot-help", false, "Show AI agent help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: mw [options] [map-file]")
		fmt.Println("\nAn interactive mind-map viewer for JSON and YAML outline files.")
		fmt.Println("With no file argument, mw offers recently opened and discovered maps.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *robotHelp {
		fmt.Println("mw (mindweave) AI Agent Interface")
		fmt.Println("=================================")
		fmt.Println("Structural tooling around hierarchical mind-map files.")
		fmt.Println("")
		fmt.Println("Commands:")
		fmt.Println("  --robot-stats [map-file]")
		fmt.Println("      Outputs tree statistics as JSON.")
		fmt.Println("      Key fields:")
		fmt.Println("      - node_count, leaf_count, max_depth")
		fmt.Println("      - rank_widths: nodes per depth level")
		fmt.Println("      - branching_mean/std_dev: children per internal node")
		fmt.Println("")
		fmt.Println("  --structure <transcript> [--out FILE]")
		fmt.Println("      Parses a recorded outline (\"# title\" plus indented bullets)")
		fmt.Println("      into a mind-map JSON document. Two spaces or one tab per")
		fmt.Println("      nesting level.")
		fmt.Println("")
		fmt.Println("  --export-svg/--export-png/--export-html/--export-md <file>")
		fmt.Println("      Renders the map without starting the TUI.")
		fmt.Println("      HTML output is self-contained: pan, zoom, and folding work")
		fmt.Println("      offline in any browser.")
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("mw %s\n", Version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *themeName != "" {
		cfg.Theme = *themeName
	}
	if *pngScale > 0 {
		cfg.Export.PNGScale = *pngScale
	}

	// --structure works without an existing map.
	if *structureFile != "" {
		runStructure(*structureFile, *structureOut)
		os.Exit(0)
	}

	mapPath, err := resolveMapPath(flag.Arg(0), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tree, err := loader.LoadMap(mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading map: %v\n", err)
		os.Exit(1)
	}

	if *robotStats {
		stats := analysis.Analyze(tree)
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding stats: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	theme := export.ThemeByName(cfg.Theme)
	switch {
	case *exportSVG != "":
		exitOn(export.SaveSVG(*exportSVG, tree, nil, theme))
		fmt.Printf("Wrote %s\n", *exportSVG)
		os.Exit(0)
	case *exportPNG != "":
		exitOn(export.SavePNG(*exportPNG, tree, nil, theme, cfg.Export.PNGScale))
		fmt.Printf("Wrote %s\n", *exportPNG)
		os.Exit(0)
	case *exportHTML != "":
		_, err := export.GenerateHTML(export.HTMLOptions{Root: tree, Path: *exportHTML, Theme: theme})
		exitOn(err)
		fmt.Printf("Wrote %s\n", *exportHTML)
		os.Exit(0)
	case *exportMD != "":
		exitOn(export.SaveMarkdown(*exportMD, tree, ""))
		fmt.Printf("Wrote %s\n", *exportMD)
		os.Exit(0)
	case *exportAll:
		paths, err := export.ExportAll(context.Background(), tree, export.AllOptions{
			Dir:      cfg.Export.Dir,
			BaseName: strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath)),
			Theme:    theme,
			PNGScale: cfg.Export.PNGScale,
		})
		exitOn(err)
		for _, p := range paths {
			fmt.Printf("Wrote %s\n", p)
		}
		os.Exit(0)
	}

	touchHistory(mapPath)

	// Live reload keeps the viewer in sync with edits to the map file.
	var reloads <-chan *mindmap.Node
	if cfg.WatchEnabled() && !*noWatch {
		watcher, err := loader.NewWatcher(mapPath)
		if err != nil {
			log.Printf("warning: live reload disabled: %v", err)
		} else if err := watcher.Start(); err != nil {
			log.Printf("warning: live reload disabled: %v", err)
		} else {
			defer watcher.Stop()
			reloads = watcher.Reloads()
		}
	}

	m := ui.NewModel(ui.ModelOptions{
		Tree:      tree,
		Theme:     ui.ThemeByName(cfg.Theme),
		Reloads:   reloads,
		ExportDir: cfg.Export.Dir,
		PNGScale:  cfg.Export.PNGScale,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveMapPath picks the map to open: the explicit argument if
// given, otherwise a picker over recent, local, and configured
// discovery locations.
func resolveMapPath(arg string, cfg config.Config) (string, error) {
	if arg != "" {
		return arg, nil
	}

	var entries []ui.PickerEntry
	seen := make(map[string]bool)
	add := func(path, label string) {
		if abs, err := filepath.Abs(path); err == nil {
			if seen[abs] {
				return
			}
			seen[abs] = true
		}
		entries = append(entries, ui.PickerEntry{Path: path, Label: label})
	}

	if store := openHistory(); store != nil {
		defer store.Close()
		if _, err := store.Forget(); err != nil {
			log.Printf("warning: failed to prune history: %v", err)
		}
		if recent, err := store.Recent(9); err == nil {
			for _, e := range recent {
				add(e.Path, fmt.Sprintf("%s (recent)", e.Path))
			}
		}
	}

	cwd, _ := os.Getwd()
	for _, p := range loader.DiscoverMaps(cwd) {
		add(p, "")
	}
	for _, p := range config.DiscoverMapFiles(cfg.Discovery) {
		add(p, "")
	}

	if len(entries) == 0 {
		return "", fmt.Errorf("no map files found; pass a .json or .yaml file or run in a directory containing one")
	}
	return ui.PickFile(entries)
}

func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		log.Printf("warning: history unavailable: %v", err)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.Printf("warning: history unavailable: %v", err)
		return nil
	}
	return store
}

func touchHistory(mapPath string) {
	store := openHistory()
	if store == nil {
		return
	}
	defer store.Close()
	if err := store.Touch(mapPath); err != nil {
		log.Printf("warning: failed to record history: %v", err)
	}
}

// runStructure converts a recorded transcript into a mind-map JSON
// document: the formal outline text plus the tree itself.
func runStructure(transcriptPath, outPath string) {
	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transcript: %v\n", err)
		os.Exit(1)
	}

	structurer := transcribe.OutlineStructurer{}
	result, err := structurer.Structure(context.Background(), string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error structuring transcript: %v\n", err)
		os.Exit(1)
	}

	encoded, err := result.Map.Encode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding map: %v\n", err)
		os.Exit(1)
	}

	if outPath == "" {
		os.Stdout.Write(encoded)
		fmt.Println()
		return
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing map: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}
