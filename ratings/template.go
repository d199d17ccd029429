package ratings

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const templateEndpoint = "ratings/template"

// GetTemplate retrieves a single rating template.
func GetTemplate(ctx context.Context, s *api.Session, templateID, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"template-id": validation.Validate(templateID, validation.Required),
		"office":      validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().Set("office", office)
	doc, err := s.Get(ctx, templateEndpoint+"/"+templateID, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// GetTemplates lists rating templates, following pagination.
func GetTemplates(ctx context.Context, s *api.Session, office, templateIDMask string, pageSize int) (*data.Data, error) {
	if pageSize == 0 {
		pageSize = 500000
	}
	q := api.NewQuery().
		SetNonEmpty("office", office).
		SetNonEmpty("template-id-mask", templateIDMask).
		SetInt("page-size", pageSize)
	doc, err := s.GetPages(ctx, "templates", templateEndpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "templates"), nil
}

// StoreTemplate uploads a rating template in its XML document form.
func StoreTemplate(ctx context.Context, s *api.Session, templateXML string, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"template": validation.Validate(templateXML, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, templateEndpoint+"/", q, api.VersionXMLv2, []byte(templateXML))
}

// DeleteTemplate removes a rating template using the given delete method.
func DeleteTemplate(ctx context.Context, s *api.Session, templateID, office string, method api.DeleteMethod) error {
	if err := api.ValidateParams(validation.Errors{
		"template-id": validation.Validate(templateID, validation.Required),
		"office":      validation.Validate(office, validation.Required),
		"method":      validation.Validate(method, validation.Required, validation.In(api.DeleteMethods...)),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("method", string(method))
	return s.Delete(ctx, templateEndpoint+"/"+templateID, q, api.VersionJSONv2)
}
