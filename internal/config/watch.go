package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single config file. It watches the parent
// directory so editors that replace the file on save are still seen.
type Watcher struct {
	path     string
	w        *fsnotify.Watcher
	log      *slog.Logger
	Debounce time.Duration
}

// Watch starts watching path.
func Watch(path string, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	return &Watcher{
		path:     abs,
		w:        fw,
		log:      log,
		Debounce: 100 * time.Millisecond,
	}, nil
}

// Run calls onChange after the file is written, created or renamed into
// place. Bursts of events within Debounce collapse into one call. Run
// returns when ctx is done and closes the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.w.Close()

	timer := time.NewTimer(w.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("config changed", "path", w.path, "op", ev.Op.String())
			timer.Reset(w.Debounce)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watcher error", "path", w.path, "err", err)
		case <-timer.C:
			onChange()
		}
	}
}

// Close stops the watcher without waiting for Run.
func (w *Watcher) Close() error {
	return w.w.Close()
}
