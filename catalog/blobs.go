package catalog

import (
	"context"
	"encoding/base64"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const blobsEndpoint = "blobs"

// Blob is the payload for StoreBlob. Value is raw file content; it is
// base64-encoded on the wire.
type Blob struct {
	OfficeID    string `json:"office-id"`
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	MediaTypeID string `json:"media-type-id"`
	Value       []byte `json:"-"`
}

// wireBlob is the JSON form the API accepts.
type wireBlob struct {
	OfficeID    string `json:"office-id"`
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	MediaTypeID string `json:"media-type-id"`
	Value       string `json:"value"`
}

// GetBlobBytes retrieves a single blob's content. Blobs are served as raw
// bytes of their declared media type, not as JSON.
func GetBlobBytes(ctx context.Context, s *api.Session, blobID, office string) ([]byte, error) {
	if err := api.ValidateParams(validation.Errors{
		"blob-id": validation.Validate(blobID, validation.Required),
		"office":  validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().Set("office", office)
	return s.GetBytes(ctx, blobsEndpoint+"/"+blobID, q, api.VersionJSON)
}

// GetBlobs lists blobs, optionally filtered by office and a POSIX regex
// against the blob id.
func GetBlobs(ctx context.Context, s *api.Session, office string, pageSize int, blobIDLike string) (*data.Data, error) {
	if pageSize == 0 {
		pageSize = 100
	}
	q := api.NewQuery().
		SetNonEmpty("office", office).
		SetInt("page-size", pageSize).
		SetNonEmpty("like", blobIDLike)
	doc, err := s.Get(ctx, blobsEndpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "blobs"), nil
}

// StoreBlob uploads a blob.
func StoreBlob(ctx context.Context, s *api.Session, blob Blob, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"office-id":     validation.Validate(blob.OfficeID, validation.Required),
		"id":            validation.Validate(blob.ID, validation.Required),
		"media-type-id": validation.Validate(blob.MediaTypeID, validation.Required),
		"value":         validation.Validate(blob.Value, validation.Required),
	}); err != nil {
		return err
	}
	body := wireBlob{
		OfficeID:    blob.OfficeID,
		ID:          blob.ID,
		Description: blob.Description,
		MediaTypeID: blob.MediaTypeID,
		Value:       base64.StdEncoding.EncodeToString(blob.Value),
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, blobsEndpoint, q, api.VersionJSON, body)
}
