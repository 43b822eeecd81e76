// Package fswatch implements assetcache.EventSource on top of fsnotify.
// It filters chmod noise, hidden files and foreign extensions before anything
// reaches the reload worker.
package fswatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	assetcache "github.com/modfox/assetcache"
)

// Config tunes a Watcher.
type Config struct {
	// Extensions limits events to the given file extensions (with leading
	// dot, case-insensitive). Empty = all files.
	Extensions []string

	// SkipHidden drops events for dot-files and skips dot-directories when
	// walking.
	SkipHidden bool

	// Buffer is the event channel capacity. 0 => 64.
	Buffer int
}

// Watcher adapts fsnotify to the event stream the reload worker consumes.
type Watcher struct {
	fw   *fsnotify.Watcher
	cfg  Config
	evs  chan assetcache.Event
	errs chan error

	closeOnce sync.Once
	closeErr  error
}

var _ assetcache.EventSource = (*Watcher)(nil)

func New(cfg Config) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fswatch: create watcher: %w", err)
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	w := &Watcher{
		fw:   fw,
		cfg:  cfg,
		evs:  make(chan assetcache.Event, cfg.Buffer),
		errs: make(chan error, 1),
	}
	go w.translate()
	return w, nil
}

// Add watches a file, or a directory tree recursively. Call it once per asset
// root before starting the worker.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fswatch: stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return w.fw.Add(path)
	}
	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if w.cfg.SkipHidden && p != path && strings.HasPrefix(filepath.Base(p), ".") {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			if err := w.fw.Add(p); err != nil {
				return fmt.Errorf("fswatch: watch %q: %w", p, err)
			}
		}
		return nil
	})
}

func (w *Watcher) Events() <-chan assetcache.Event { return w.evs }

func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher. The event channel closes once the internal
// fsnotify stream drains.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fw.Close()
	})
	return w.closeErr
}

func (w *Watcher) translate() {
	defer close(w.evs)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			op, relevant := mapOp(ev.Op)
			if !relevant || !w.keep(ev.Name) {
				continue
			}
			w.evs <- assetcache.Event{Path: ev.Name, Op: op}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default: // a stalled consumer should not wedge fsnotify
			}
		}
	}
}

func (w *Watcher) keep(path string) bool {
	base := filepath.Base(path)
	if w.cfg.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}
	if len(w.cfg.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range w.cfg.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func mapOp(op fsnotify.Op) (assetcache.Op, bool) {
	switch {
	case op.Has(fsnotify.Write), op.Has(fsnotify.Create):
		return assetcache.OpModified, true
	case op.Has(fsnotify.Remove):
		return assetcache.OpRemoved, true
	case op.Has(fsnotify.Rename):
		return assetcache.OpRenamed, true
	default: // chmod
		return 0, false
	}
}
