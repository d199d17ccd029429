package timeseries

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const identifierEndpoint = "timeseries/identifier-descriptor"

// GetIdentifier retrieves the identifying information for one time series,
// without values.
func GetIdentifier(ctx context.Context, s *api.Session, tsID, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(tsID, validation.Required),
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().Set("office", office)
	doc, err := s.Get(ctx, identifierEndpoint+"/"+tsID, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetIdentifiers lists time series identifier descriptors for an office,
// optionally filtered by a POSIX regex, following pagination.
func GetIdentifiers(ctx context.Context, s *api.Session, office, idRegex string, pageSize int) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"office": validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	q := api.NewQuery().
		Set("office", office).
		SetNonEmpty("timeseries-id-regex", idRegex).
		SetInt("page-size", pageSize)
	doc, err := s.GetPages(ctx, "descriptors", identifierEndpoint+"/", q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "descriptors"), nil
}

// StoreIdentifier creates a time series identifier from its JSON document
// form:
//
//	{
//	  "office-id": "...",
//	  "time-series-id": "...",
//	  "timezone-name": "...",
//	  "interval-offset-minutes": 0,
//	  "active": true
//	}
func StoreIdentifier(ctx context.Context, s *api.Session, descriptor map[string]any, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"descriptor": validation.Validate(descriptor, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, identifierEndpoint+"/", q, api.VersionJSONv2, descriptor)
}

// DeleteIdentifier removes a time series identifier using the given delete
// method.
func DeleteIdentifier(ctx context.Context, s *api.Session, tsID, office string, method api.DeleteMethod) error {
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(tsID, validation.Required),
		"office": validation.Validate(office, validation.Required),
		"method": validation.Validate(method, validation.Required, validation.In(api.DeleteMethods...)),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("method", string(method))
	return s.Delete(ctx, identifierEndpoint+"/"+tsID, q, api.VersionJSONv2)
}
