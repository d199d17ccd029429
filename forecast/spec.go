// Package forecast wraps the CWMS Data API forecast specification and
// forecast instance endpoints.
package forecast

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const specEndpoint = "forecast-spec"

// SpecsFilter narrows GetSpecs results. All fields are optional regex
// masks except SourceEntity, which matches exactly.
type SpecsFilter struct {
	IDMask         string
	Office         string
	DesignatorMask string
	SourceEntity   string
}

// GetSpecs lists forecast specifications matching the filter.
func GetSpecs(ctx context.Context, s *api.Session, filter *SpecsFilter) (*data.Data, error) {
	if filter == nil {
		filter = &SpecsFilter{}
	}
	q := api.NewQuery().
		SetNonEmpty("office", filter.Office).
		SetNonEmpty("id-mask", filter.IDMask).
		SetNonEmpty("designator-mask", filter.DesignatorMask).
		SetNonEmpty("source-entity", filter.SourceEntity)
	doc, err := s.Get(ctx, specEndpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetSpec retrieves a single forecast specification.
func GetSpec(ctx context.Context, s *api.Session, specID, office, designator string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"spec-id":    validation.Validate(specID, validation.Required),
		"office":     validation.Validate(office, validation.Required),
		"designator": validation.Validate(designator, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("designator", designator)
	doc, err := s.Get(ctx, specEndpoint+"/"+specID, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreSpec creates or updates a forecast specification.
func StoreSpec(ctx context.Context, s *api.Session, spec map[string]any) error {
	if err := api.ValidateParams(validation.Errors{
		"spec": validation.Validate(spec, validation.Required),
	}); err != nil {
		return err
	}
	return s.Post(ctx, specEndpoint, api.NewQuery(), api.VersionJSON, spec)
}

// DeleteSpec removes a forecast specification using the given delete method.
func DeleteSpec(ctx context.Context, s *api.Session, specID, office, designator string, method api.DeleteMethod) error {
	if err := api.ValidateParams(validation.Errors{
		"spec-id":    validation.Validate(specID, validation.Required),
		"office":     validation.Validate(office, validation.Required),
		"designator": validation.Validate(designator, validation.Required),
		"method":     validation.Validate(method, validation.Required, validation.In(api.DeleteMethods...)),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("designator", designator).
		Set("method", string(method))
	return s.Delete(ctx, specEndpoint+"/"+specID, q, api.VersionJSON)
}
