package levels

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const specifiedEndpoint = "specified-levels"

// GetSpecifiedLevels retrieves specified levels. Both masks default to "*"
// so the unfiltered call spans all offices.
func GetSpecifiedLevels(ctx context.Context, s *api.Session, levelMask, office string) (*data.Data, error) {
	if levelMask == "" {
		levelMask = "*"
	}
	if office == "" {
		office = "*"
	}
	q := api.NewQuery().
		Set("office", office).
		Set("template-id-mask", levelMask)
	doc, err := s.Get(ctx, specifiedEndpoint, q, api.VersionJSONv2)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreSpecifiedLevel creates a specified level from its JSON document form.
func StoreSpecifiedLevel(ctx context.Context, s *api.Session, level map[string]any, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"level": validation.Validate(level, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, specifiedEndpoint, q, api.VersionJSONv2, level)
}

// DeleteSpecifiedLevel removes a specified level.
func DeleteSpecifiedLevel(ctx context.Context, s *api.Session, levelID, office string) error {
	if err := api.ValidateParams(validation.Errors{
		"level-id": validation.Validate(levelID, validation.Required),
		"office":   validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().Set("office", office)
	return s.Delete(ctx, specifiedEndpoint+"/"+levelID, q, api.VersionJSONv2)
}

// UpdateSpecifiedLevel renames a specified level.
func UpdateSpecifiedLevel(ctx context.Context, s *api.Session, oldLevelID, newLevelID, office string) error {
	if err := api.ValidateParams(validation.Errors{
		"old-level-id": validation.Validate(oldLevelID, validation.Required),
		"new-level-id": validation.Validate(newLevelID, validation.Required),
		"office":       validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("specified-level-id", newLevelID)
	return s.Patch(ctx, specifiedEndpoint+"/"+oldLevelID, q, api.VersionJSONv2, nil)
}
