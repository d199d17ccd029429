package uploader

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInput(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadFile_StoresBlob(t *testing.T) {
	content := []byte("%PDF-1.7 pretend report")
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/blobs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("fail-if-exists") != "false" {
			t.Errorf("fail-if-exists = %q", r.URL.Query().Get("fail-if-exists"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := api.NewSession(api.WithAPIRoot(srv.URL), api.WithAPIKey("k"))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	up := New(s, "SWT", testLogger(), nil)

	path := writeInput(t, "report.pdf", content)
	if err := up.UploadFile(context.Background(), Request{Path: path}); err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}

	if got["office-id"] != "SWT" {
		t.Errorf("office-id = %v", got["office-id"])
	}
	if got["id"] != "REPORT.PDF" {
		t.Errorf("id = %v, want uppercased file name", got["id"])
	}
	if got["media-type-id"] != "application/pdf" {
		t.Errorf("media-type-id = %v", got["media-type-id"])
	}
	decoded, err := base64.StdEncoding.DecodeString(got["value"].(string))
	if err != nil {
		t.Fatalf("value is not base64: %v", err)
	}
	if string(decoded) != string(content) {
		t.Error("decoded value does not match file content")
	}
}

func TestUploadFile_SkipsJournaled(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := api.NewSession(api.WithAPIRoot(srv.URL))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	journal, err := OpenJournal(filepath.Join(t.TempDir(), "uploads.json"))
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	up := New(s, "SWT", testLogger(), journal)

	path := writeInput(t, "data.bin", []byte{1, 2, 3})
	if err := up.UploadFile(context.Background(), Request{Path: path}); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if err := up.UploadFile(context.Background(), Request{Path: path}); err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 store call, got %d", calls)
	}

	// Rewriting the file with different content clears the skip.
	if err := os.WriteFile(path, []byte{1, 2, 3, 4}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := up.UploadFile(context.Background(), Request{Path: path}); err != nil {
		t.Fatalf("upload after rewrite failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 store calls after rewrite, got %d", calls)
	}
}

func TestUploadFile_ExplicitIDAndMediaType(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := api.NewSession(api.WithAPIRoot(srv.URL))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	up := New(s, "SWT", testLogger(), nil)

	path := writeInput(t, "weird.dat", []byte("x"))
	err = up.UploadFile(context.Background(), Request{
		Path:      path,
		BlobID:    "my-custom-id",
		MediaType: "application/x-custom",
	})
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if got["id"] != "MY-CUSTOM-ID" {
		t.Errorf("id = %v, want uppercased explicit id", got["id"])
	}
	if got["media-type-id"] != "application/x-custom" {
		t.Errorf("media-type-id = %v", got["media-type-id"])
	}
}

func TestMediaTypeForPath(t *testing.T) {
	if got := MediaTypeForPath("report.pdf"); got != "application/pdf" {
		t.Errorf("pdf: got %q", got)
	}
	if got := MediaTypeForPath("mystery.zzz9"); got != "application/octet-stream" {
		t.Errorf("unknown extension: got %q", got)
	}
}

func TestUploadFile_MissingFile(t *testing.T) {
	s, err := api.NewSession()
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	up := New(s, "SWT", testLogger(), nil)
	if err := up.UploadFile(context.Background(), Request{Path: "/no/such/file"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
