package uploader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestJournal_RecordFlushReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploads.json")

	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	if j.Seen("/data/file.pdf", 100) {
		t.Error("fresh journal should not have seen anything")
	}

	j.Record("/data/file.pdf", Entry{BlobID: "FILE.PDF", Size: 100, UploadedAt: time.Now().UTC()})
	if !j.Seen("/data/file.pdf", 100) {
		t.Error("recorded file should be seen")
	}
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	// Reopen and verify persistence.
	j2, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("reopening journal: %v", err)
	}
	if !j2.Seen("/data/file.pdf", 100) {
		t.Error("entry should survive a reopen")
	}
	if j2.Seen("/data/file.pdf", 200) {
		t.Error("a size change must invalidate the entry")
	}
	if e := j2.Snapshot()["/data/file.pdf"]; e.BlobID != "FILE.PDF" {
		t.Errorf("snapshot blob id = %q", e.BlobID)
	}
}

func TestJournal_FlushIsNoOpWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploads.json")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clean journal should not create a file")
	}
}

func TestJournal_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploads.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenJournal(path); err == nil {
		t.Fatal("expected error for corrupt journal")
	}
}
