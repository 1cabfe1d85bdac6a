package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/view"
)

// AllOptions configures ExportAll.
type AllOptions struct {
	Dir       string
	BaseName  string
	Title     string
	Collapsed view.CollapseSet
	Theme     Theme
	PNGScale  float64
}

// ExportAll renders every format concurrently into opts.Dir and
// returns the written paths. The first failure cancels the rest.
func ExportAll(ctx context.Context, root *mindmap.Node, opts AllOptions) ([]string, error) {
	if root == nil {
		return nil, fmt.Errorf("no tree to export")
	}
	if opts.Theme.Background == "" {
		opts.Theme = DarkTheme
	}
	base := opts.BaseName
	if base == "" {
		base = strings.ReplaceAll(root.Label, " ", "_")
	}
	if base == "" {
		base = "mindmap"
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	stem := filepath.Join(dir, base)

	paths := []string{stem + ".svg", stem + ".png", stem + ".html", stem + ".md"}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return SaveSVG(paths[0], root, opts.Collapsed, opts.Theme)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return SavePNG(paths[1], root, opts.Collapsed, opts.Theme, opts.PNGScale)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := GenerateHTML(HTMLOptions{Root: root, Title: opts.Title, Path: paths[2], Theme: opts.Theme})
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return SaveMarkdown(paths[3], root, opts.Title)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
