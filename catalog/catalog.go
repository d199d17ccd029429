// Package catalog wraps the CWMS Data API catalog, blob, and clob
// endpoints.
package catalog

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const catalogPageSize = 5000

// TimeSeriesFilter narrows GetTimeSeriesCatalog.
type TimeSeriesFilter struct {
	UnitSystem     string // SI or EN
	Like           string // POSIX regex against the time series id
	CategoryLike   string
	GroupLike      string
	BoundingOffice string
	IncludeExtents bool
	PageSize       int
}

// GetTimeSeriesCatalog retrieves the time series catalog for an office,
// following pagination so the envelope holds every entry.
func GetTimeSeriesCatalog(ctx context.Context, s *api.Session, office string, filter *TimeSeriesFilter) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &TimeSeriesFilter{}
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = catalogPageSize
	}
	q := api.NewQuery().
		Set("office", office).
		SetInt("page-size", pageSize).
		SetNonEmpty("unit-system", filter.UnitSystem).
		SetNonEmpty("like", filter.Like).
		SetNonEmpty("timeseries-category-like", filter.CategoryLike).
		SetNonEmpty("timeseries-group-like", filter.GroupLike).
		SetNonEmpty("bounding-office-like", filter.BoundingOffice).
		SetBool("include-extents", filter.IncludeExtents)
	doc, err := s.GetPages(ctx, "entries", "catalog/TIMESERIES", q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "entries"), nil
}

// LocationsFilter narrows GetLocationsCatalog.
type LocationsFilter struct {
	UnitSystem     string
	Like           string
	CategoryLike   string
	GroupLike      string
	BoundingOffice string
	KindLike       string // e.g. "(SITE|STREAM)"
	PageSize       int
}

// GetLocationsCatalog retrieves the locations catalog for an office,
// following pagination.
func GetLocationsCatalog(ctx context.Context, s *api.Session, office string, filter *LocationsFilter) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &LocationsFilter{}
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = catalogPageSize
	}
	q := api.NewQuery().
		Set("office", office).
		SetInt("page-size", pageSize).
		SetNonEmpty("units", filter.UnitSystem).
		SetNonEmpty("like", filter.Like).
		SetNonEmpty("location-category-like", filter.CategoryLike).
		SetNonEmpty("location-group-like", filter.GroupLike).
		SetNonEmpty("bounding-office-like", filter.BoundingOffice).
		SetNonEmpty("location-kind-like", filter.KindLike)
	doc, err := s.GetPages(ctx, "entries", "catalog/LOCATIONS", q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "entries"), nil
}
