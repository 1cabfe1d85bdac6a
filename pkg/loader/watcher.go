package loader

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mindweave/mindweave/pkg/mindmap"
)

// Watcher watches a single mind-map file and delivers freshly decoded
// trees on Reloads. Every delivery is a new tree object; consumers
// detect changes by identity comparison. Rapid write bursts are
// debounced.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	reloads chan *mindmap.Node

	ctx    context.Context
	cancel context.CancelFunc

	debounce  time.Duration
	lastEvent time.Time
}

// NewWatcher creates a watcher for the given map file. Call Start to
// begin delivery and Stop to tear it down.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		watcher:  fsw,
		reloads:  make(chan *mindmap.Node, 1),
		ctx:      ctx,
		cancel:   cancel,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Reloads returns the channel of freshly loaded trees. The channel is
// closed when the watcher stops.
func (w *Watcher) Reloads() <-chan *mindmap.Node {
	return w.reloads
}

// Start begins watching. The containing directory is watched rather
// than the file itself so editors that replace-on-save keep working.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	go w.watchLoop()
	return nil
}

// Stop shuts the watcher down and closes Reloads.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	defer close(w.reloads)
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}

			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now

			root, err := LoadMap(w.path)
			if err != nil {
				// Transient states (partial writes) are expected;
				// keep the old tree until the file decodes again.
				log.Printf("warning: reload of %s failed: %v", w.path, err)
				continue
			}

			// Drop a pending undelivered tree in favor of the newest.
			select {
			case <-w.reloads:
			default:
			}
			select {
			case w.reloads <- root:
			case <-w.ctx.Done():
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("warning: watch error: %v", err)
		}
	}
}
