// Package locations wraps the CWMS Data API physical location endpoints.
package locations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const endpoint = "locations"

// Filter narrows Get.
type Filter struct {
	Office string
	// Names restricts the response to specific location ids
	// (pipe-separated on the wire).
	Names string
	Units string
	Datum string
}

// Get retrieves physical locations. The table view lists one row per
// location.
func Get(ctx context.Context, s *api.Session, filter *Filter) (*data.Data, error) {
	if filter == nil {
		filter = &Filter{}
	}
	q := api.NewQuery().
		SetNonEmpty("office", filter.Office).
		SetNonEmpty("names", filter.Names).
		SetNonEmpty("units", filter.Units).
		SetNonEmpty("datum", filter.Datum)
	doc, err := s.Get(ctx, endpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "locations.locations"), nil
}

// GetOne retrieves a single location by name.
func GetOne(ctx context.Context, s *api.Session, name, office, unit string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(name, validation.Required),
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		SetNonEmpty("unit", unit)
	doc, err := s.Get(ctx, endpoint+"/"+name, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// Store creates or replaces a location from its JSON document form.
func Store(ctx context.Context, s *api.Session, location map[string]any) error {
	if err := api.ValidateParams(validation.Errors{
		"location": validation.Validate(location, validation.Required),
	}); err != nil {
		return err
	}
	return s.Post(ctx, endpoint, api.NewQuery(), api.VersionJSONv2, location)
}

// Delete removes a location.
func Delete(ctx context.Context, s *api.Session, name, office string, cascadeDelete bool) error {
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(name, validation.Required),
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		SetBool("cascade-delete", cascadeDelete)
	return s.Delete(ctx, endpoint+"/"+name, q, api.VersionJSONv2)
}
