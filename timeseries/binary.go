package timeseries

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const binaryEndpoint = "timeseries/binary"

// BinaryOptions are the optional parameters for binary time series
// retrieval and deletion. MinAttribute and MaxAttribute bound the
// attribute values of the records considered.
type BinaryOptions struct {
	// TypeMask matches binary media types with glob-style wildcards.
	// Defaults to "*".
	TypeMask     string
	MinAttribute *float64
	MaxAttribute *float64
}

func binaryQuery(office string, begin, end time.Time, opts *BinaryOptions) *api.Query {
	mask := opts.TypeMask
	if mask == "" {
		mask = "*"
	}
	return api.NewQuery().
		Set("office", office).
		SetTime("begin", begin).
		SetTime("end", end).
		Set("binary-type-mask", mask).
		SetFloat("min-attribute", opts.MinAttribute).
		SetFloat("max-attribute", opts.MaxAttribute)
}

// GetBinary retrieves binary time series records inside the window.
func GetBinary(ctx context.Context, s *api.Session, name, office string, begin, end time.Time, opts *BinaryOptions) (*data.Data, error) {
	if opts == nil {
		opts = &BinaryOptions{}
	}
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(name, validation.Required),
		"office": validation.Validate(office, validation.Required),
		"begin":  validation.Validate(begin, validation.Required),
		"end":    validation.Validate(end, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := binaryQuery(office, begin, end, opts).Set("name", name)
	doc, err := s.Get(ctx, binaryEndpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreBinary stores a binary time series from its JSON document form.
func StoreBinary(ctx context.Context, s *api.Session, series map[string]any, replaceAll bool) error {
	if err := api.ValidateParams(validation.Errors{
		"binary-timeseries": validation.Validate(series, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("replace-all", replaceAll)
	return s.Post(ctx, binaryEndpoint, q, api.VersionJSONv2, series)
}

// DeleteBinary removes binary time series records inside the window.
func DeleteBinary(ctx context.Context, s *api.Session, name, office string, begin, end time.Time, opts *BinaryOptions) error {
	if opts == nil {
		opts = &BinaryOptions{}
	}
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(name, validation.Required),
		"office": validation.Validate(office, validation.Required),
		"begin":  validation.Validate(begin, validation.Required),
		"end":    validation.Validate(end, validation.Required),
	}); err != nil {
		return err
	}
	q := binaryQuery(office, begin, end, opts)
	return s.Delete(ctx, binaryEndpoint+"/"+name, q, api.VersionJSONv2)
}
