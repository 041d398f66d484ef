package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and fans the new
// config out to registered callbacks. Editors replace files via rename, so
// the parent directory is watched rather than the file itself.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
	log  *log.Logger

	mu        sync.Mutex
	callbacks []func(*Config)
	done      chan struct{}
}

// NewWatcher starts watching path's directory. Callbacks registered via
// OnChange run on the watcher goroutine with each successfully reloaded
// config; a file that fails to parse or validate keeps the previous config.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path: path,
		fsw:  fsw,
		log:  logger,
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// OnChange registers a callback for reloaded configs.
func (w *Watcher) OnChange(cb func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	// Editors save via write bursts or rename+create; a short settle timer
	// coalesces them into one reload.
	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("config change detected", "op", ev.Op.String(), "file", ev.Name)
			if settle == nil {
				settle = time.NewTimer(100 * time.Millisecond)
				settleC = settle.C
			} else {
				settle.Reset(100 * time.Millisecond)
			}
		case <-settleC:
			settle = nil
			settleC = nil
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		w.log.Warn("failed to reload config, keeping previous", "error", err)
		return
	}
	w.log.Info("config reloaded", "file", w.path)

	w.mu.Lock()
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}
