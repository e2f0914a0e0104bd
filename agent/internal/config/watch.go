package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the sources at paths, and every file they include, and calls
// onChange with the newly loaded Config each time one of them changes. It runs
// until ctx is cancelled.
//
// The directories holding the sources are watched rather than the files, so
// atomic saves (write to temp, rename over) are seen. If a reload fails the
// error is logged and the previous config remains active; Watch does not call
// onChange. onChange runs on the watcher goroutine, so reloads never overlap.
func Watch(ctx context.Context, paths []string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	w := &sourceWatcher{
		watcher: watcher,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
	}
	if err := w.track(paths); err != nil {
		return err
	}
	// Pick up the files pulled in through include keys.
	if cfg, err := Load(paths...); err == nil {
		if err := w.track(cfg.Sources); err != nil {
			return err
		}
	}

	slog.Info("config: watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			cfg, err := Load(paths...)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"file", event.Name, "err", err)
				continue
			}

			slog.Info("config: reloaded", "id", cfg.ID, "file", event.Name,
				"sources", len(cfg.Sources), "plugins", len(cfg.Plugins))
			if err := w.track(cfg.Sources); err != nil {
				slog.Warn("config: cannot watch new source", "err", err)
			}
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}

// sourceWatcher maps fsnotify events on directories back to source files.
type sourceWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool // absolute paths of known sources
	dirs    map[string]bool // directories added to the watcher
}

// track registers files and starts watching their directories.
func (w *sourceWatcher) track(files []string) error {
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	return nil
}

// relevant reports whether event changes the content of a known source.
func (w *sourceWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
