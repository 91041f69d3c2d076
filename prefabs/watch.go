package prefabs

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a reloaded file.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

type Change struct {
	Path string
	Kind ChangeKind
}

// Name is the file name without directories, as passed to Load.
func (c Change) Name() string {
	return filepath.Base(c.Path)
}

// Watcher reports edits to prefab specs and scripts on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	return &Watcher{watcher: w, debounce: 100 * time.Millisecond}, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers changes to onChange until ctx is done or the watcher fails.
// Bursts of events for one file inside the debounce window collapse to one.
func (w *Watcher) Run(ctx context.Context, onChange func(Change)) error {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			onChange(Change{Path: event.Name, Kind: kind})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
