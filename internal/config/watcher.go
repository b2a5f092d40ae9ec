package config

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a configuration file and notifies typed handlers when it
// changes. The file is loaded fresh on every change so handlers never see
// stale data. Used to live-reload camera control defaults into running
// reconfiguration servers.
type Watcher[T any] struct {
	path     string
	debounce time.Duration
	loader   func(path string) (T, error)
	logger   *slog.Logger

	mu       sync.RWMutex
	handlers []func(T)

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWatcher creates a typed configuration file watcher.
func NewWatcher[T any](path string, loader func(path string) (T, error), logger *slog.Logger) *Watcher[T] {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher[T]{
		path:     path,
		debounce: 1500 * time.Millisecond,
		loader:   loader,
		logger:   logger.With("component", "config-watcher"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnReload registers a handler called with the freshly loaded config after
// every change.
func (w *Watcher[T]) OnReload(handler func(T)) {
	w.mu.Lock()
	w.handlers = append(w.handlers, handler)
	w.mu.Unlock()
}

// Start begins watching the file.
func (w *Watcher[T]) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher
	w.logger.Info("config watcher started", "path", w.path)
	go w.watch()
	return nil
}

// Stop stops watching and releases resources.
func (w *Watcher[T]) Stop() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher[T]) watch() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Writes are the common case; some editors replace the file.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			w.loadAndNotify()
			timerC = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher[T]) loadAndNotify() {
	cfg, err := w.loader(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "error", err)
		return
	}

	w.mu.RLock()
	handlers := make([]func(T), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		handler(cfg)
	}
}
