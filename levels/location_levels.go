// Package levels wraps the CWMS Data API location level and specified
// level endpoints.
package levels

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const endpoint = "levels"

// Filter narrows GetLocationLevels.
type Filter struct {
	// LevelIDMask filters level ids; defaults to "*".
	LevelIDMask string
	Office      string
	Unit        string
	Datum       string
	// Begin and End bound the effective-date window. Times without an
	// offset are read as UTC.
	Begin    time.Time
	End      time.Time
	PageSize int
}

// GetLocationLevels retrieves location levels matching the filter,
// following pagination.
func GetLocationLevels(ctx context.Context, s *api.Session, filter *Filter) (*data.Data, error) {
	if filter == nil {
		filter = &Filter{}
	}
	mask := filter.LevelIDMask
	if mask == "" {
		mask = "*"
	}
	q := api.NewQuery().
		Set("level-id-mask", mask).
		SetNonEmpty("office", filter.Office).
		SetNonEmpty("unit", filter.Unit).
		SetNonEmpty("datum", filter.Datum).
		SetTime("begin", filter.Begin).
		SetTime("end", filter.End).
		SetInt("page-size", filter.PageSize)
	doc, err := s.GetPages(ctx, "levels", endpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "levels"), nil
}

// GetLocationLevel retrieves a single location level at an effective date.
func GetLocationLevel(ctx context.Context, s *api.Session, levelID, office string, effectiveDate time.Time, unit string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"level-id":       validation.Validate(levelID, validation.Required),
		"office":         validation.Validate(office, validation.Required),
		"effective-date": validation.Validate(effectiveDate, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		SetNonEmpty("unit", unit).
		SetTime("effective-date", effectiveDate)
	doc, err := s.Get(ctx, endpoint+"/"+levelID, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreLocationLevel creates a location level from its JSON document form.
func StoreLocationLevel(ctx context.Context, s *api.Session, level map[string]any) error {
	if err := api.ValidateParams(validation.Errors{
		"level": validation.Validate(level, validation.Required),
	}); err != nil {
		return err
	}
	return s.Post(ctx, endpoint, api.NewQuery(), api.VersionJSONv2, level)
}

// DeleteLocationLevel removes a location level. A zero effectiveDate
// deletes at the current time; cascadeDelete also removes related seasonal
// data.
func DeleteLocationLevel(ctx context.Context, s *api.Session, levelID, office string, effectiveDate time.Time, cascadeDelete bool) error {
	if err := api.ValidateParams(validation.Errors{
		"level-id": validation.Validate(levelID, validation.Required),
		"office":   validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		SetTime("effective-date", effectiveDate).
		SetBool("cascade-delete", cascadeDelete)
	return s.Delete(ctx, endpoint+"/"+levelID, q, api.VersionJSONv2)
}

// GetLevelAsTimeSeries materializes a location level as a regular time
// series at the given interval.
func GetLevelAsTimeSeries(ctx context.Context, s *api.Session, levelID, office, unit string, begin, end time.Time, interval string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"level-id": validation.Validate(levelID, validation.Required),
		"office":   validation.Validate(office, validation.Required),
		"unit":     validation.Validate(unit, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("unit", unit).
		SetTime("begin", begin).
		SetTime("end", end).
		SetNonEmpty("interval", interval)
	doc, err := s.Get(ctx, endpoint+"/"+levelID+"/timeseries", q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "values"), nil
}
