// Package watcher reloads a presentation when its file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original keep triggering reloads. Bursts of events are debounced into a
// single callback.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gubarz/pinpoint/internal/logger"
)

// ErrWatcherClosed is returned when Run is called after Close
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher calls back when a single file changes
type Watcher struct {
	mu sync.Mutex

	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	log      *logger.Logger
	closed   bool
}

// New starts watching path. The callback fires debounce after the last change.
func New(path string, debounce time.Duration, log *logger.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Watcher{
		path:     absPath,
		debounce: debounce,
		fsw:      fsw,
		log:      log.With("watch", absPath),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers change notifications to onChange until ctx is done or the
// watcher is closed. onChange is never called concurrently with itself.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.mu.Unlock()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("file changed", "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-timer.C:
			onChange()
		}
	}
}

// relevant reports whether ev touches the watched file's contents
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

// Close stops watching
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}
