// Package ratings wraps the CWMS Data API rating, rating specification,
// and rating template endpoints.
package ratings

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const endpoint = "ratings"

// Method selects how much of a rating a retrieval returns.
type Method string

const (
	// Eager retrieves all rating data including the individual dependent
	// and independent values.
	Eager Method = "EAGER"
	// Lazy retrieves rating data excluding the individual values.
	Lazy Method = "LAZY"
	// Reference retrieves only reference data about the rating spec.
	Reference Method = "REFERENCE"
)

var methods = []any{Eager, Lazy, Reference}

// GetOptions are the optional parameters for Get. Begin and End bound the
// effective dates of the ratings returned.
type GetOptions struct {
	Begin    time.Time
	End      time.Time
	Timezone string
	// Method defaults to Eager.
	Method Method
	// SingleRating selects the rating-points of a lone eager rating as
	// the table view, for single-curve retrievals.
	SingleRating bool
}

// Get retrieves ratings for a rating id. The table view depends on the
// retrieval method: reference data tabulates the document itself, lazy and
// eager tabulate the simple-rating, and SingleRating tabulates the curve
// points.
func Get(ctx context.Context, s *api.Session, ratingID, office string, opts *GetOptions) (*data.Data, error) {
	if opts == nil {
		opts = &GetOptions{}
	}
	method := opts.Method
	if method == "" {
		method = Eager
	}
	if err := api.ValidateParams(validation.Errors{
		"rating-id": validation.Validate(ratingID, validation.Required),
		"office":    validation.Validate(office, validation.Required),
		"method":    validation.Validate(method, validation.In(methods...)),
	}); err != nil {
		return nil, err
	}

	q := api.NewQuery().
		Set("office", office).
		SetTime("begin", opts.Begin).
		SetTime("end", opts.End).
		SetNonEmpty("timezone", opts.Timezone).
		Set("method", string(method))

	doc, err := s.Get(ctx, endpoint+"/"+ratingID, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}

	switch {
	case method == Eager && opts.SingleRating:
		return data.New(doc, "simple-rating.rating-points"), nil
	case method == Reference:
		return data.New(doc, ""), nil
	default:
		return data.New(doc, "simple-rating"), nil
	}
}

// GetXML retrieves ratings in their XML document form.
func GetXML(ctx context.Context, s *api.Session, ratingID, office string, opts *GetOptions) (string, error) {
	if opts == nil {
		opts = &GetOptions{}
	}
	method := opts.Method
	if method == "" {
		method = Eager
	}
	if err := api.ValidateParams(validation.Errors{
		"rating-id": validation.Validate(ratingID, validation.Required),
		"office":    validation.Validate(office, validation.Required),
		"method":    validation.Validate(method, validation.In(methods...)),
	}); err != nil {
		return "", err
	}
	q := api.NewQuery().
		Set("office", office).
		SetTime("begin", opts.Begin).
		SetTime("end", opts.End).
		SetNonEmpty("timezone", opts.Timezone).
		Set("method", string(method))
	body, err := s.GetBytes(ctx, endpoint+"/"+ratingID, q, api.VersionXMLv2)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Store uploads a rating in its XML document form. The CDA accepts ratings
// as XML only.
func Store(ctx context.Context, s *api.Session, ratingXML string, storeTemplate bool) error {
	if err := api.ValidateParams(validation.Errors{
		"rating": validation.Validate(ratingXML, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("store-template", storeTemplate)
	return s.Post(ctx, endpoint, q, api.VersionXMLv2, []byte(ratingXML))
}

// Update stores a new rating curve to an existing rating specification.
// The document may be JSON (a map) or XML (a string starting with "<?xml").
func Update(ctx context.Context, s *api.Session, ratingID string, document any, storeTemplate bool) error {
	if err := api.ValidateParams(validation.Errors{
		"rating-id": validation.Validate(ratingID, validation.Required),
		"data":      validation.Validate(document, validation.Required),
	}); err != nil {
		return err
	}
	version := api.VersionJSONv2
	body := document
	if xml, ok := document.(string); ok {
		version = api.VersionXMLv2
		body = []byte(xml)
	}
	q := api.NewQuery().SetBool("store-template", storeTemplate)
	return s.Patch(ctx, endpoint+"/"+ratingID, q, version, body)
}

// Delete removes ratings with effective dates inside the window.
func Delete(ctx context.Context, s *api.Session, ratingID, office string, begin, end time.Time) error {
	if err := api.ValidateParams(validation.Errors{
		"rating-id": validation.Validate(ratingID, validation.Required),
		"office":    validation.Validate(office, validation.Required),
		"begin":     validation.Validate(begin, validation.Required),
		"end":       validation.Validate(end, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		SetTime("begin", begin).
		SetTime("end", end)
	return s.Delete(ctx, endpoint+"/"+ratingID, q, api.VersionJSONv2)
}
