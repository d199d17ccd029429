package forecast

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const instanceEndpoint = "forecast-instance"

// GetInstances lists forecast instances for a forecast specification.
func GetInstances(ctx context.Context, s *api.Session, specID, office, designator string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"spec-id":    validation.Validate(specID, validation.Required),
		"office":     validation.Validate(office, validation.Required),
		"designator": validation.Validate(designator, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("name", specID).
		Set("designator", designator)
	doc, err := s.Get(ctx, instanceEndpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetInstance retrieves a single forecast instance, identified by its
// forecast and issue dates.
func GetInstance(ctx context.Context, s *api.Session, specID, office, designator string, forecastDate, issueDate time.Time) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"spec-id":       validation.Validate(specID, validation.Required),
		"office":        validation.Validate(office, validation.Required),
		"designator":    validation.Validate(designator, validation.Required),
		"forecast-date": validation.Validate(forecastDate, validation.Required),
		"issue-date":    validation.Validate(issueDate, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("designator", designator).
		SetTime("forecast-date", forecastDate).
		SetTime("issue-date", issueDate)
	doc, err := s.Get(ctx, instanceEndpoint+"/"+specID, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreInstance creates or updates a forecast instance.
func StoreInstance(ctx context.Context, s *api.Session, instance map[string]any) error {
	if err := api.ValidateParams(validation.Errors{
		"instance": validation.Validate(instance, validation.Required),
	}); err != nil {
		return err
	}
	return s.Post(ctx, instanceEndpoint, api.NewQuery(), api.VersionJSON, instance)
}

// DeleteInstance removes a single forecast instance.
func DeleteInstance(ctx context.Context, s *api.Session, specID, office, designator string, forecastDate, issueDate time.Time) error {
	if err := api.ValidateParams(validation.Errors{
		"spec-id":       validation.Validate(specID, validation.Required),
		"office":        validation.Validate(office, validation.Required),
		"designator":    validation.Validate(designator, validation.Required),
		"forecast-date": validation.Validate(forecastDate, validation.Required),
		"issue-date":    validation.Validate(issueDate, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("designator", designator).
		SetTime("forecast-date", forecastDate).
		SetTime("issue-date", issueDate)
	return s.Delete(ctx, instanceEndpoint+"/"+specID, q, api.VersionJSON)
}
