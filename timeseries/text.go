package timeseries

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const textEndpoint = "timeseries/text"

// TextMode selects which kind of text records a text time series
// operation touches.
type TextMode string

const (
	// TextRegular addresses free-form text records.
	TextRegular TextMode = "REGULAR"
	// TextStandard addresses records referencing a standard text id.
	TextStandard TextMode = "STANDARD"
	// TextAll addresses both kinds.
	TextAll TextMode = "ALL"
)

var textModes = []any{TextRegular, TextStandard, TextAll}

// TextOptions are the optional parameters for text time series retrieval
// and deletion.
type TextOptions struct {
	// Mode defaults to TextRegular.
	Mode TextMode
	// TextMask matches record text with glob-style wildcards on deletes.
	// For standard text records this is the standard text id. Defaults
	// to "*".
	TextMask     string
	MinAttribute *float64
	MaxAttribute *float64
}

func textQuery(office string, begin, end time.Time, mode TextMode, opts *TextOptions) *api.Query {
	return api.NewQuery().
		Set("office", office).
		SetTime("begin", begin).
		SetTime("end", end).
		Set("mode", string(mode)).
		SetFloat("min-attribute", opts.MinAttribute).
		SetFloat("max-attribute", opts.MaxAttribute)
}

// GetText retrieves text time series records inside the window.
func GetText(ctx context.Context, s *api.Session, name, office string, begin, end time.Time, opts *TextOptions) (*data.Data, error) {
	if opts == nil {
		opts = &TextOptions{}
	}
	mode := opts.Mode
	if mode == "" {
		mode = TextRegular
	}
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(name, validation.Required),
		"office": validation.Validate(office, validation.Required),
		"begin":  validation.Validate(begin, validation.Required),
		"end":    validation.Validate(end, validation.Required),
		"mode":   validation.Validate(mode, validation.In(textModes...)),
	}); err != nil {
		return nil, err
	}
	q := textQuery(office, begin, end, mode, opts).Set("name", name)
	doc, err := s.Get(ctx, textEndpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreText stores a text time series from its JSON document form.
func StoreText(ctx context.Context, s *api.Session, series map[string]any, replaceAll bool) error {
	if err := api.ValidateParams(validation.Errors{
		"text-timeseries": validation.Validate(series, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("replace-all", replaceAll)
	return s.Post(ctx, textEndpoint, q, api.VersionJSONv2, series)
}

// DeleteText removes text time series records inside the window.
func DeleteText(ctx context.Context, s *api.Session, name, office string, begin, end time.Time, opts *TextOptions) error {
	if opts == nil {
		opts = &TextOptions{}
	}
	mode := opts.Mode
	if mode == "" {
		mode = TextRegular
	}
	mask := opts.TextMask
	if mask == "" {
		mask = "*"
	}
	if err := api.ValidateParams(validation.Errors{
		"name":   validation.Validate(name, validation.Required),
		"office": validation.Validate(office, validation.Required),
		"begin":  validation.Validate(begin, validation.Required),
		"end":    validation.Validate(end, validation.Required),
		"mode":   validation.Validate(mode, validation.In(textModes...)),
	}); err != nil {
		return err
	}
	q := textQuery(office, begin, end, mode, opts).Set("text-mask", mask)
	return s.Delete(ctx, textEndpoint+"/"+name, q, api.VersionJSONv2)
}
