package ratings

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const specEndpoint = "ratings/spec"

// GetSpec retrieves a single rating specification.
func GetSpec(ctx context.Context, s *api.Session, ratingID, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"rating-id": validation.Validate(ratingID, validation.Required),
		"office":    validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().Set("office", office)
	doc, err := s.Get(ctx, specEndpoint+"/"+ratingID, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetSpecs lists rating specifications, optionally filtered by a POSIX
// regex, following pagination.
func GetSpecs(ctx context.Context, s *api.Session, office, ratingIDMask string, pageSize int) (*data.Data, error) {
	if pageSize == 0 {
		pageSize = 500000
	}
	q := api.NewQuery().
		SetNonEmpty("office", office).
		SetNonEmpty("rating-id-mask", ratingIDMask).
		SetInt("page-size", pageSize)
	doc, err := s.GetPages(ctx, "specs", specEndpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "specs"), nil
}

// StoreSpec uploads a rating specification in its XML document form.
func StoreSpec(ctx context.Context, s *api.Session, specXML string, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"spec": validation.Validate(specXML, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, specEndpoint+"/", q, api.VersionXMLv2, []byte(specXML))
}

// DeleteSpec removes a rating specification using the given delete method.
func DeleteSpec(ctx context.Context, s *api.Session, ratingID, office string, method api.DeleteMethod) error {
	if err := api.ValidateParams(validation.Errors{
		"rating-id": validation.Validate(ratingID, validation.Required),
		"office":    validation.Validate(office, validation.Required),
		"method":    validation.Validate(method, validation.Required, validation.In(api.DeleteMethods...)),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("method", string(method))
	return s.Delete(ctx, specEndpoint+"/"+ratingID, q, api.VersionJSONv2)
}
