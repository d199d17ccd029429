// Package timeseries wraps the CWMS Data API time series endpoints.
//
// Reads return a [data.Data] envelope pairing the raw JSON document with a
// tabular view; for value retrievals the table columns follow the
// server-declared value-columns (date-time, value, quality-code) and
// date-times are UTC time.Time values.
package timeseries

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const (
	endpoint      = "timeseries"
	groupEndpoint = "timeseries/group"
)

// defaultPageSize matches the server's maximum single-call record count.
const defaultPageSize = 500000

// GetOptions are the optional parameters for Get.
type GetOptions struct {
	// Unit is the unit or unit system of the response: EN, SI, or a
	// specific unit. Defaults to EN.
	Unit string
	// Datum is the elevation datum (NAVD88 or NGVD29); affects only
	// elevation series.
	Datum string
	// Begin and End bound the time window. An unset Begin defaults
	// server-side to 24 hours before End; an unset End defaults to now.
	Begin time.Time
	End   time.Time
	// Timezone names the zone of Begin and End when they carry no offset.
	// Response values are always UTC.
	Timezone string
	// VersionDate selects a versioned series snapshot.
	VersionDate time.Time
	// PageSize caps records per call. Defaults to 500000.
	PageSize int
}

// Get retrieves values for one time series over a time window, following
// pagination so the returned envelope holds the complete window. The
// table's date-times are always UTC.
func Get(ctx context.Context, s *api.Session, tsID, office string, opts *GetOptions) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(tsID, validation.Required),
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &GetOptions{}
	}
	unit := opts.Unit
	if unit == "" {
		unit = "EN"
	}
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	q := api.NewQuery().
		Set("office", office).
		Set("name", tsID).
		Set("unit", unit).
		SetNonEmpty("datum", opts.Datum).
		SetTime("begin", opts.Begin).
		SetTime("end", opts.End).
		SetNonEmpty("timezone", opts.Timezone).
		SetTime("version-date", opts.VersionDate).
		SetInt("page-size", pageSize)

	doc, err := s.GetPages(ctx, "values", endpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "values"), nil
}

// Value is one time series sample. It marshals to the CDA wire form, a
// three-element array of ISO 8601 date-time, value, and quality code.
type Value struct {
	DateTime time.Time
	Value    float64
	Quality  int
}

// MarshalJSON encodes the sample as [date-time, value, quality-code].
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{v.DateTime.Format(time.RFC3339), v.Value, v.Quality})
}

// TimeSeries is the payload for Store.
type TimeSeries struct {
	Name     string  `json:"name"`
	OfficeID string  `json:"office-id"`
	Units    string  `json:"units"`
	Values   []Value `json:"values"`
}

// AddRow appends a sample, accepting the date-time in any common string
// format. Times without an offset are read as UTC.
func (ts *TimeSeries) AddRow(dateTime string, value float64, quality int) error {
	t, err := dateparse.ParseIn(dateTime, time.UTC)
	if err != nil {
		return fmt.Errorf("parsing date-time %q: %w", dateTime, err)
	}
	ts.Values = append(ts.Values, Value{DateTime: t, Value: value, Quality: quality})
	return nil
}

// StoreOptions are the optional parameters for Store.
type StoreOptions struct {
	// VersionDate versions the stored data.
	VersionDate time.Time
	// Timezone names the zone of VersionDate when it carries no offset.
	Timezone string
	// CreateAsLRTS creates the series as a Local Regular Time Series.
	CreateAsLRTS bool
	// StoreRule is the merge rule: REPLACE_ALL, DO_NOT_REPLACE,
	// REPLACE_MISSING_VALUES_ONLY, REPLACE_WITH_NON_MISSING, or
	// DELETE_INSERT.
	StoreRule string
	// OverrideProtection ignores protected quality codes when storing.
	OverrideProtection bool
}

// Store creates the time series if needed and stores the provided values.
func Store(ctx context.Context, s *api.Session, ts TimeSeries, opts *StoreOptions) error {
	if err := api.ValidateParams(validation.Errors{
		"name":      validation.Validate(ts.Name, validation.Required),
		"office-id": validation.Validate(ts.OfficeID, validation.Required),
		"units":     validation.Validate(ts.Units, validation.Required),
		"values":    validation.Validate(ts.Values, validation.Required),
	}); err != nil {
		return err
	}
	for i, v := range ts.Values {
		if v.DateTime.IsZero() {
			return &api.ValidationError{Err: fmt.Errorf("values[%d]: date-time is required", i)}
		}
		if math.IsNaN(v.Value) {
			return &api.ValidationError{Err: fmt.Errorf("values[%d]: null/NaN data must be removed", i)}
		}
	}
	if opts == nil {
		opts = &StoreOptions{}
	}

	q := api.NewQuery().
		SetTime("version-date", opts.VersionDate).
		SetNonEmpty("timezone", opts.Timezone).
		SetBool("create-as-lrts", opts.CreateAsLRTS).
		SetNonEmpty("store-rule", opts.StoreRule).
		SetBool("override-protection", opts.OverrideProtection)

	return s.Post(ctx, endpoint, q, api.VersionJSONv2, ts)
}

// Delete removes stored values from a time series over a time window.
func Delete(ctx context.Context, s *api.Session, tsID, office string, begin, end time.Time) error {
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(tsID, validation.Required),
		"office": validation.Validate(office, validation.Required),
		"begin":  validation.Validate(begin, validation.Required),
		"end":    validation.Validate(end, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		SetTime("begin", begin).
		SetTime("end", end)
	return s.Delete(ctx, endpoint+"/"+tsID, q, api.VersionJSONv2)
}
