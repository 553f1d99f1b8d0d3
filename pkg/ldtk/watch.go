package ldtk

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkworld"
)

// debounceDelay coalesces the burst of filesystem events an editor
// produces for a single save.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a project file whenever it changes on disk.
//
// Every observed change triggers a full re-run of the pipeline; the
// fresh world arrives on Worlds, reload failures on Errors. The watcher
// keeps running after a failed reload, so a half-saved file does not end
// the session.
type Watcher struct {
	loader  *Loader
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	Worlds chan *ldtkworld.World
	Errors chan error

	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching the project file at path. The watcher reloads
// through l, so a successful reload also refreshes l's cache.
func (l *Loader) Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors that save by renaming a
	// temp file over the target would silently drop a watch held on the
	// file itself.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		loader:  l,
		path:    abs,
		watcher: fsw,
		logger:  l.logger,
		Worlds:  make(chan *ldtkworld.World, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once; the Worlds
// and Errors channels are closed once the event loop has drained.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Worlds)
	defer close(w.Errors)

	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Only one directory is watched, so the base name is enough
			// to single out the target file.
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			debounce.Reset(debounceDelay)
		case <-debounce.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// reload re-runs the pipeline and publishes the outcome.
func (w *Watcher) reload() {
	world, err := w.loader.loadFile(context.Background(), w.path, w.loader.options)
	if err != nil {
		w.logger.Warn("project reload failed", "path", w.path, "error", err)
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		}
		return
	}

	w.logger.Debug("project reloaded", "path", w.path, "levels", len(world.Levels))
	select {
	case w.Worlds <- world:
	case <-w.closeCh:
	}
}
