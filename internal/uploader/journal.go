// Package uploader implements the blob upload pipeline behind the cwms
// CLI: single-shot file uploads, a directory watcher that uploads newly
// dropped files, and a journal that remembers what has been uploaded so a
// restart does not re-send files already stored.
package uploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry records a completed upload for a single file. Size is recorded so
// that a file rewritten with new content is uploaded again even though its
// path is already in the journal.
type Entry struct {
	BlobID     string    `json:"blob_id"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Journal persists upload entries as a JSON file on the local filesystem.
//
// The file contains a single JSON object mapping file paths to entries.
// Writes use the write-temp-then-rename pattern so the journal is always in
// a valid state even if the process is killed mid-write. The worst case is
// losing the most recent entry, which costs one duplicate upload with
// fail-if-exists disabled, never a lost file.
//
// Journal is safe for concurrent use by the upload workers. Internal state
// is protected by a sync.RWMutex, allowing concurrent Seen checks while
// serializing Records and Flushes.
type Journal struct {
	path    string
	mu      sync.RWMutex
	entries map[string]Entry
	dirty   bool
}

// OpenJournal creates a Journal backed by the given file path. If the file
// already exists, its contents are loaded into memory. If the file does not
// exist, the journal starts empty.
func OpenJournal(path string) (*Journal, error) {
	j := &Journal{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return j, nil
		}
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &j.entries); err != nil {
			return nil, fmt.Errorf("parsing journal %s: %w", path, err)
		}
	}

	return j, nil
}

// Seen reports whether the file at path has already been uploaded at the
// given size.
func (j *Journal) Seen(path string, size int64) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	e, ok := j.entries[path]
	return ok && e.Size == size
}

// Record stores the entry for an uploaded file in memory. The change is not
// persisted to disk until Flush is called.
func (j *Journal) Record(path string, e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[path] = e
	j.dirty = true
}

// Flush writes the journal to disk using an atomic write pattern. If no
// changes have been made since the last flush, this is a no-op.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.dirty {
		return nil
	}

	data, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling journal: %w", err)
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating journal directory: %w", err)
	}

	// Write to a temp file in the same directory so the rename is atomic.
	tmpFile, err := os.CreateTemp(dir, "uploads-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp journal file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp journal file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp journal file: %w", err)
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming journal file: %w", err)
	}

	j.dirty = false
	return nil
}

// Close flushes any pending changes.
func (j *Journal) Close() error {
	return j.Flush()
}

// Snapshot returns a copy of all journal entries. The returned map is a
// copy so mutations do not affect the journal.
func (j *Journal) Snapshot() map[string]Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	snapshot := make(map[string]Entry, len(j.entries))
	for k, v := range j.entries {
		snapshot[k] = v
	}
	return snapshot
}
