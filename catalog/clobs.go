package catalog

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const clobsEndpoint = "clobs"

// ignoredID is the placeholder path element used when a clob id cannot be
// carried in the URL path itself.
const ignoredID = "ignored"

// Clob is the payload for StoreClob and UpdateClob.
type Clob struct {
	OfficeID    string `json:"office-id"`
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value"`
}

// clobPath routes ids containing URL-significant characters through the
// "ignored" path element with the real id as a query parameter.
func clobPath(clobID string, q *api.Query) string {
	if strings.ContainsAny(clobID, "/?#%") {
		q.Set("clob-id", clobID)
		return clobsEndpoint + "/" + ignoredID
	}
	return clobsEndpoint + "/" + clobID
}

// GetClob retrieves a single clob.
func GetClob(ctx context.Context, s *api.Session, clobID, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"clob-id": validation.Validate(clobID, validation.Required),
		"office":  validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery()
	endpoint := clobPath(clobID, q)
	q.Set("office", office)
	doc, err := s.Get(ctx, endpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetClobs lists clobs, optionally with their values included.
func GetClobs(ctx context.Context, s *api.Session, office string, pageSize int, includeValues bool, clobIDLike string) (*data.Data, error) {
	if pageSize == 0 {
		pageSize = 100
	}
	q := api.NewQuery().
		SetNonEmpty("office", office).
		SetInt("page-size", pageSize).
		SetBool("include-values", includeValues).
		SetNonEmpty("like", clobIDLike)
	doc, err := s.Get(ctx, clobsEndpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "clobs"), nil
}

// StoreClob creates a clob.
func StoreClob(ctx context.Context, s *api.Session, clob Clob, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"office-id": validation.Validate(clob.OfficeID, validation.Required),
		"id":        validation.Validate(clob.ID, validation.Required),
		"value":     validation.Validate(clob.Value, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, clobsEndpoint, q, api.VersionJSON, clob)
}

// UpdateClob patches an existing clob. Null and empty fields are left in
// place unless ignoreNulls is false.
func UpdateClob(ctx context.Context, s *api.Session, clob Clob, ignoreNulls bool) error {
	if err := api.ValidateParams(validation.Errors{
		"id": validation.Validate(clob.ID, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery()
	endpoint := clobPath(clob.ID, q)
	q.SetBool("ignore-nulls", ignoreNulls)
	return s.Patch(ctx, endpoint, q, api.VersionJSON, clob)
}

// DeleteClob removes a clob.
func DeleteClob(ctx context.Context, s *api.Session, clobID, office string) error {
	if err := api.ValidateParams(validation.Errors{
		"clob-id": validation.Validate(clobID, validation.Required),
		"office":  validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery()
	endpoint := clobPath(clobID, q)
	q.Set("office", office)
	return s.Delete(ctx, endpoint, q, api.VersionJSON)
}
