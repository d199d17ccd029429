package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/catalog"
	"github.com/HydrologicEngineeringCenter/cwms-go/internal/metrics"
)

// Uploader stores local files as blobs.
type Uploader struct {
	session *api.Session
	office  string
	logger  *slog.Logger
	journal *Journal
}

// New creates an Uploader. The journal may be nil for single-shot uploads
// that do not need dedup across restarts.
func New(session *api.Session, office string, logger *slog.Logger, journal *Journal) *Uploader {
	return &Uploader{
		session: session,
		office:  office,
		logger:  logger.With("component", "uploader"),
		journal: journal,
	}
}

// Request describes a single file upload. Zero-value optional fields are
// filled in: BlobID from the file name and MediaType from the extension.
type Request struct {
	Path        string
	BlobID      string
	Description string
	MediaType   string
}

// UploadFile reads the file and stores it as a blob. Blob ids are
// uppercased to match how the server catalogs them. Files already present
// in the journal at the same size are skipped.
func (u *Uploader) UploadFile(ctx context.Context, req Request) error {
	info, err := os.Stat(req.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", req.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", req.Path)
	}

	if u.journal != nil && u.journal.Seen(req.Path, info.Size()) {
		u.logger.Debug("skipping already uploaded file", "path", req.Path)
		return nil
	}

	blobID := req.BlobID
	if blobID == "" {
		blobID = BlobIDForPath(req.Path)
	}
	blobID = strings.ToUpper(blobID)

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = MediaTypeForPath(req.Path)
	}

	content, err := os.ReadFile(req.Path)
	if err != nil {
		metrics.Metrics.UploadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("reading %s: %w", req.Path, err)
	}
	u.logger.Info("read file", "path", req.Path, "bytes", len(content))

	blob := catalog.Blob{
		OfficeID:    u.office,
		ID:          blobID,
		Description: req.Description,
		MediaTypeID: mediaType,
		Value:       content,
	}
	if err := catalog.StoreBlob(ctx, u.session, blob, false); err != nil {
		metrics.Metrics.UploadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("storing blob %s: %w", blobID, err)
	}

	metrics.Metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.Metrics.UploadBytesTotal.Add(float64(len(content)))

	if u.journal != nil {
		u.journal.Record(req.Path, Entry{
			BlobID:     blobID,
			Size:       info.Size(),
			UploadedAt: time.Now().UTC(),
		})
	}

	u.logger.Info("stored blob",
		"id", blobID,
		"media_type", mediaType,
		"view", u.session.APIRoot()+"blobs/"+blobID+"?office="+u.office,
	)
	return nil
}

// BlobIDForPath derives a blob id from a file name.
func BlobIDForPath(path string) string {
	return strings.ToUpper(filepath.Base(path))
}

// MediaTypeForPath guesses the media type from the file extension.
func MediaTypeForPath(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		// TypeByExtension may append a charset parameter for text types.
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return "application/octet-stream"
}
