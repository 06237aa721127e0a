package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the result of each reload. On error the previous
// configuration stays in effect and cfg is nil.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a config file when it changes on disk. It watches the
// file's directory so that editors which replace the file by rename are seen.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	opts     Options
	onReload ReloadFunc
	debounce time.Duration
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	reloads  int
}

// NewWatcher watches opts.Path. Reloads go through LoadWith(opts).
func NewWatcher(opts Options, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:       fw,
		opts:     opts,
		onReload: onReload,
		debounce: 150 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fs.Add(filepath.Dir(w.opts.Path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return &ConfigError{Type: ErrFile, Message: "failed to watch config directory", Err: err}
	}
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.fs.Close()
}

// Reloads returns how many reloads have been delivered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	target := filepath.Clean(w.opts.Path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onReload(nil, &ConfigError{Type: ErrFile, Message: "watch error", Err: err})
		case <-tick.C:
			w.flush()
		}
	}
}

// flush reloads once the last event is older than the debounce window.
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	cfg, err := LoadWith(w.opts)

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.onReload(cfg, err)
}
