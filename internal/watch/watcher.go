package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/util/sets"
)

// Watcher turns fsnotify events under a content root into classified
// notifications. New directories are watched as they appear.
type Watcher struct {
	root    string
	fsw     *fsnotify.Watcher
	handler Handler
	// dirs is only touched from the Run goroutine after New returns.
	dirs sets.Set[string]
}

// New watches root and every directory below it.
func New(root string, handler Handler) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	if st, statErr := os.Stat(absRoot); statErr != nil || !st.IsDir() {
		return nil, fmt.Errorf("watch root not found or not a directory: %s", absRoot)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{root: absRoot, fsw: fsw, handler: handler, dirs: sets.New[string]()}
	w.addDirsRecursive(absRoot)
	return w, nil
}

// Run delivers notifications until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("Watching content tree", logfields.Path(w.root), logfields.Count(w.dirs.Len()))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			kind, ok := w.classify(ev)
			if !ok {
				continue
			}
			slog.Debug("File change detected", logfields.Path(ev.Name), logfields.EventKind(kind.String()))
			w.handler.Notify(kind, ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// classify maps an fsnotify event onto an EventKind. Chmod-only events are dropped.
func (w *Watcher) classify(ev fsnotify.Event) (EventKind, bool) {
	switch {
	case ev.Has(fsnotify.Create):
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
			return CreatedDirectory, true
		}
		return Created, true
	case ev.Has(fsnotify.Write):
		return Changed, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if w.dirs.Has(ev.Name) {
			w.dirs.Delete(ev.Name)
			return RemovedDirectory, true
		}
		return Removed, true
	default:
		return 0, false
	}
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
				return nil
			}
			w.dirs.Add(path)
		}
		return nil
	})
}
