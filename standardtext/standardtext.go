// Package standardtext wraps the CWMS Data API standard text endpoints.
// Standard texts are short canned messages keyed by an id and office.
package standardtext

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const endpoint = "standard-text-id"

// StandardText is the payload for Store.
type StandardText struct {
	ID           TextID `json:"id"`
	StandardText string `json:"standard-text"`
}

// TextID identifies a standard text within an office.
type TextID struct {
	OfficeID string `json:"office-id"`
	ID       string `json:"id"`
}

// GetCatalog lists standard text ids matching the given regex masks.
// Empty masks match everything.
func GetCatalog(ctx context.Context, s *api.Session, textIDMask, officeIDMask string) (*data.Data, error) {
	q := api.NewQuery().
		SetNonEmpty("text-id-mask", textIDMask).
		SetNonEmpty("office-id-mask", officeIDMask)
	doc, err := s.Get(ctx, endpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// Get retrieves a single standard text.
func Get(ctx context.Context, s *api.Session, textID, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"text-id": validation.Validate(textID, validation.Required),
		"office":  validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().Set("office", office)
	doc, err := s.Get(ctx, endpoint+"/"+textID, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// Store creates a standard text.
func Store(ctx context.Context, s *api.Session, text StandardText, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"id":            validation.Validate(text.ID.ID, validation.Required),
		"office-id":     validation.Validate(text.ID.OfficeID, validation.Required),
		"standard-text": validation.Validate(text.StandardText, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, endpoint, q, api.VersionJSON, text)
}

// Delete removes a standard text using the given delete method.
func Delete(ctx context.Context, s *api.Session, textID, office string, method api.DeleteMethod) error {
	if err := api.ValidateParams(validation.Errors{
		"text-id": validation.Validate(textID, validation.Required),
		"office":  validation.Validate(office, validation.Required),
		"method":  validation.Validate(method, validation.Required, validation.In(api.DeleteMethods...)),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("method", string(method))
	return s.Delete(ctx, endpoint+"/"+textID, q, api.VersionJSON)
}
