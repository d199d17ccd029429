package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches directories for newly dropped files and emits their
// paths once they have settled. Editors and network copies write files in
// several chunks, so each path is debounced: the timer restarts on every
// write event and the path is emitted only after settleDelay of quiet.
type Watcher struct {
	dirs        []string
	settleDelay time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a Watcher over the given directories.
func NewWatcher(dirs []string, settleDelay time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		dirs:        dirs,
		settleDelay: settleDelay,
		logger:      logger.With("component", "watcher"),
		pending:     make(map[string]*time.Timer),
	}
}

// Run watches until the context is cancelled, sending settled file paths
// to out. It does not close out; the caller owns the channel.
func (w *Watcher) Run(ctx context.Context, out chan<- string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Info("watching directory", "dir", dir)
	}

	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.touch(ctx, event.Name, out)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// touch restarts the settle timer for a path.
func (w *Watcher) touch(ctx context.Context, path string, out chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case out <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}
