package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor write bursts into one reload
const DefaultDebounce = 200 * time.Millisecond

// WatchOption configures Watch
type WatchOption func(*watcher)

// WithDebounce sets the quiet period before a reload
func WithDebounce(d time.Duration) WatchOption {
	return func(w *watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithOnError receives load failures; the previous configuration stays active
func WithOnError(fn func(error)) WatchOption {
	return func(w *watcher) { w.onError = fn }
}

// WithWatchLogger sets the logger; default slog.Default()
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(w *watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

type watcher struct {
	path     string
	debounce time.Duration
	onChange func(*Config)
	onError  func(error)
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// Watch reloads path on change and passes each valid configuration to onChange
// The parent directory is watched so atomic rename-on-save is seen
// Returns once the watch is registered; the goroutine exits with ctx
func Watch(ctx context.Context, path string, onChange func(*Config), opts ...WatchOption) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	w := &watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  func(error) {},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch config: %w", err)
	}

	go w.loop(ctx, fsw)
	return nil
}

func (w *watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	defer w.stop()

	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.trigger(ctx)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", "error", err)
			w.onError(err)
		}
	}
}

func (w *watcher) trigger(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "error", err)
		w.onError(err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	w.onChange(cfg)
}
