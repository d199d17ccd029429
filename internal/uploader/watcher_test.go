package uploader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_EmitsSettledFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{dir}, 50*time.Millisecond, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make(chan string, 1)
	go func() { _ = w.Run(ctx, out) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "drop.pdf")
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-out:
		if got != path {
			t.Errorf("emitted path = %q, want %q", got, path)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for the watcher to emit the file")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w := NewWatcher([]string{"/no/such/dir"}, time.Second, testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Run(ctx, make(chan string, 1)); err == nil {
		t.Fatal("expected error for missing watch directory")
	}
}
