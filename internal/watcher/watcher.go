// Package watcher monitors a key-map file and reports settled changes,
// so the scorer can re-run while a layout is being edited.
package watcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher debounces file-system events on one file into change
// notifications. Editors write layouts with renames and partial
// writes; a change is only reported after the file has been quiet for
// the settle interval.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	settle    time.Duration

	changes chan string
	errors  chan error
	done    chan struct{}
}

// New creates a watcher for path. The containing directory is watched
// so atomic-rename saves are seen too.
func New(path string, settle time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      abs,
		settle:    settle,
		changes:   make(chan string, 4),
		errors:    make(chan error, 4),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers the watched path every time it settles after a
// modification.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Errors delivers watcher errors.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var settle *time.Timer
	var settleC <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(w.settle)
			} else {
				settle.Reset(w.settle)
			}
			settleC = settle.C
		case <-settleC:
			settleC = nil
			select {
			case w.changes <- w.path:
			default:
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}
