package locations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

const groupEndpoint = "location/group"

// GetGroup retrieves the locations assigned to a location group. The table
// view lists the assigned locations.
func GetGroup(ctx context.Context, s *api.Session, groupID, categoryID, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"group-id":    validation.Validate(groupID, validation.Required),
		"category-id": validation.Validate(categoryID, validation.Required),
		"office":      validation.Validate(office, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("category-id", categoryID)
	doc, err := s.Get(ctx, groupEndpoint+"/"+groupID, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "assigned-locations"), nil
}

// GetGroups lists location groups, optionally including assigned locations.
func GetGroups(ctx context.Context, s *api.Session, office string, includeAssigned bool) (*data.Data, error) {
	q := api.NewQuery().
		SetNonEmpty("office", office).
		SetBool("include-assigned", includeAssigned)
	doc, err := s.Get(ctx, groupEndpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreGroup creates a location group from its JSON document form.
func StoreGroup(ctx context.Context, s *api.Session, group map[string]any, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"group": validation.Validate(group, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, groupEndpoint, q, api.VersionJSON, group)
}

// UpdateGroup patches a group's location assignments.
func UpdateGroup(ctx context.Context, s *api.Session, groupID, office string, group map[string]any, replaceAssigned bool) error {
	if err := api.ValidateParams(validation.Errors{
		"group-id": validation.Validate(groupID, validation.Required),
		"office":   validation.Validate(office, validation.Required),
		"group":    validation.Validate(group, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		SetBool("replace-assigned-locs", replaceAssigned)
	return s.Patch(ctx, groupEndpoint+"/"+groupID, q, api.VersionJSON, group)
}

// DeleteGroup removes a location group.
func DeleteGroup(ctx context.Context, s *api.Session, groupID, categoryID, office string, cascadeDelete bool) error {
	if err := api.ValidateParams(validation.Errors{
		"group-id":    validation.Validate(groupID, validation.Required),
		"category-id": validation.Validate(categoryID, validation.Required),
		"office":      validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("category-id", categoryID).
		SetBool("cascade-delete", cascadeDelete)
	return s.Delete(ctx, groupEndpoint+"/"+groupID, q, api.VersionJSON)
}
