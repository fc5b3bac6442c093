package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads texture units when their files change on disk.
type Watcher struct {
	units *Units
	fs    *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]int
	dirs  map[string]bool
}

// NewWatcher creates a watcher feeding units.
func NewWatcher(units *Units) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	return &Watcher{
		units: units,
		fs:    fw,
		files: make(map[string]int),
		dirs:  make(map[string]bool),
	}, nil
}

// Watch reloads unit whenever path is written. The parent directory is
// watched so editors that replace the file by renaming are still seen.
func (w *Watcher) Watch(unit int, path string) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = unit
	return nil
}

func (w *Watcher) unitFor(name string) (int, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return 0, false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	unit, ok := w.files[abs]
	return unit, ok
}

// Run processes file events until ctx is done. reloaded, when non-nil, is
// called after every successful reload.
func (w *Watcher) Run(ctx context.Context, reloaded func(unit int)) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			unit, ok := w.unitFor(ev.Name)
			if !ok {
				continue
			}
			if err := w.units.Load(unit, ev.Name); err != nil {
				// Partially written files fail to decode; the next write
				// event retries.
				w.units.log.Debug("texture reload skipped", "unit", unit, "path", ev.Name, "err", err)
				continue
			}
			w.units.log.Info("texture reloaded", "unit", unit, "path", ev.Name)
			if reloaded != nil {
				reloaded(unit)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.units.log.Warn("texture watcher error", "err", err)
		}
	}
}

// Close stops the watcher without waiting for Run.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
