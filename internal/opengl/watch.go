package opengl

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher marks a ProgramCache dirty whenever a shader file in its source
// directory changes. The reload itself happens on the GL thread.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching dir. The returned Watcher must be closed.
func Watch(dir string, cache *ProgramCache, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("shader watcher: %w", err)
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if !isShader(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					logger.Debug("shader changed", "file", event.Name, "op", event.Op.String())
					cache.MarkDirty()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("shader watcher", "err", err)
			}
		}
	}()
	return w, nil
}

func isShader(name string) bool {
	switch filepath.Ext(name) {
	case ".vs", ".fs":
		return true
	}
	return false
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
