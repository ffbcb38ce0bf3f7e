// Package watch follows env files for external modification, with
// debouncing so editor save bursts collapse into one notification.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	onChange chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
}

func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Add registers a file. When the file does not exist yet its parent
// directory is watched instead, so the first write is still seen.
// Editors that save via rename are covered by watching the directory.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.files[abs] {
		return nil
	}

	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	if _, err := os.Stat(abs); err == nil {
		if err := w.fsw.Add(abs); err != nil {
			return err
		}
	}
	w.files[abs] = true
	return nil
}

// Start launches the event loop and returns the debounced change
// channel.
func (w *Watcher) Start() <-chan struct{} {
	go w.run()
	return w.onChange
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.watched(event.Name) {
				w.trigger()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) watched(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[name] {
		return true
	}
	for f := range w.files {
		if filepath.Base(f) == filepath.Base(name) {
			return true
		}
	}
	return false
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(DefaultDebounce, func() {
		select {
		case w.onChange <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
