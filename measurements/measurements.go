// Package measurements wraps the CWMS Data API streamflow measurement
// endpoints.
package measurements

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const endpoint = "measurements"

// Filter narrows Get. Every field is optional; an unbounded window
// returns all matching measurements.
type Filter struct {
	OfficeMask     string
	LocationIDMask string
	// MinNumber and MaxNumber bound the measurement number-id.
	MinNumber string
	MaxNumber string
	Begin     time.Time
	End       time.Time
	Timezone  string
	MinHeight *float64
	MaxHeight *float64
	MinFlow   *float64
	MaxFlow   *float64
	Agency    string
	Quality   string
	// Unit selects the unit system of the response, EN or SI.
	// Defaults to EN.
	Unit string
}

// Get retrieves streamflow measurements matching the filter.
func Get(ctx context.Context, s *api.Session, filter *Filter) (*data.Data, error) {
	if filter == nil {
		filter = &Filter{}
	}
	unit := filter.Unit
	if unit == "" {
		unit = "EN"
	}
	q := api.NewQuery().
		SetNonEmpty("office-mask", filter.OfficeMask).
		SetNonEmpty("id-mask", filter.LocationIDMask).
		SetNonEmpty("min-number", filter.MinNumber).
		SetNonEmpty("max-number", filter.MaxNumber).
		SetTime("begin", filter.Begin).
		SetTime("end", filter.End).
		SetNonEmpty("timezone", filter.Timezone).
		SetFloat("min-height", filter.MinHeight).
		SetFloat("max-height", filter.MaxHeight).
		SetFloat("min-flow", filter.MinFlow).
		SetFloat("max-flow", filter.MaxFlow).
		SetNonEmpty("agency", filter.Agency).
		SetNonEmpty("quality", filter.Quality).
		Set("unit-system", unit)
	doc, err := s.Get(ctx, endpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetTimeExtents retrieves the time extents of stored measurements per
// location.
func GetTimeExtents(ctx context.Context, s *api.Session, officeMask string) (*data.Data, error) {
	q := api.NewQuery().SetNonEmpty("office-mask", officeMask)
	doc, err := s.Get(ctx, endpoint+"/time-extents", q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// Store creates measurements from their JSON document forms. The body is
// a list even for a single measurement.
func Store(ctx context.Context, s *api.Session, measurements []map[string]any, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"measurements": validation.Validate(measurements, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, endpoint, q, api.VersionJSON, measurements)
}

// DeleteOptions narrow Delete beyond the required location and window.
type DeleteOptions struct {
	Timezone  string
	MinNumber string
	MaxNumber string
}

// Delete removes measurements for a location inside the window.
func Delete(ctx context.Context, s *api.Session, locationID, office string, begin, end time.Time, opts *DeleteOptions) error {
	if opts == nil {
		opts = &DeleteOptions{}
	}
	if err := api.ValidateParams(validation.Errors{
		"location-id": validation.Validate(locationID, validation.Required),
		"office":      validation.Validate(office, validation.Required),
		"begin":       validation.Validate(begin, validation.Required),
		"end":         validation.Validate(end, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		SetTime("begin", begin).
		SetTime("end", end).
		SetNonEmpty("timezone", opts.Timezone).
		SetNonEmpty("min-number", opts.MinNumber).
		SetNonEmpty("max-number", opts.MaxNumber)
	return s.Delete(ctx, endpoint+"/"+locationID, q, api.VersionJSON)
}
