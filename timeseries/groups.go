package timeseries

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/data"
)

// GetGroup retrieves the time series assigned to a group. The table view
// lists the assigned series.
func GetGroup(ctx context.Context, s *api.Session, groupID, categoryID, categoryOffice string, office string) (*data.Data, error) {
	if err := api.ValidateParams(validation.Errors{
		"group-id":           validation.Validate(groupID, validation.Required),
		"category-id":        validation.Validate(categoryID, validation.Required),
		"category-office-id": validation.Validate(categoryOffice, validation.Required),
	}); err != nil {
		return nil, err
	}
	q := api.NewQuery().
		SetNonEmpty("office", office).
		Set("category-id", categoryID).
		Set("category-office-id", categoryOffice)
	doc, err := s.Get(ctx, groupEndpoint+"/"+groupID, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, "assigned-time-series"), nil
}

// GroupsFilter narrows GetGroups. The zero value lists all groups with
// their assigned series.
type GroupsFilter struct {
	Office string
	// ExcludeAssigned omits the per-group assignment lists from the
	// response. Assignments are included by default.
	ExcludeAssigned  bool
	CategoryLike     string // POSIX regex against the category id
	GroupLike        string // POSIX regex against the group id
	CategoryOfficeID string
}

// GetGroups lists time series groups.
func GetGroups(ctx context.Context, s *api.Session, filter *GroupsFilter) (*data.Data, error) {
	if filter == nil {
		filter = &GroupsFilter{}
	}
	q := api.NewQuery().
		SetNonEmpty("office", filter.Office).
		SetBool("include-assigned", !filter.ExcludeAssigned).
		SetNonEmpty("timeseries-category-like", filter.CategoryLike).
		SetNonEmpty("timeseries-group-like", filter.GroupLike).
		SetNonEmpty("category-office-id", filter.CategoryOfficeID)
	doc, err := s.Get(ctx, groupEndpoint, q, api.VersionJSON)
	if err != nil {
		return nil, err
	}
	return data.New(doc, ""), nil
}

// StoreGroup creates a time series group from its JSON document form.
func StoreGroup(ctx context.Context, s *api.Session, group map[string]any, failIfExists bool) error {
	if err := api.ValidateParams(validation.Errors{
		"group": validation.Validate(group, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().SetBool("fail-if-exists", failIfExists)
	return s.Post(ctx, groupEndpoint, q, api.VersionJSON, group)
}

// UpdateGroup patches a group's assignments. When replaceAssigned is true
// the existing assignment list is replaced rather than appended to.
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
		SetBool("replace-assigned-ts", replaceAssigned)
	return s.Patch(ctx, groupEndpoint+"/"+groupID, q, api.VersionJSON, group)
}

// DeleteGroup removes a time series group.
func DeleteGroup(ctx context.Context, s *api.Session, groupID, categoryID, office string) error {
	if err := api.ValidateParams(validation.Errors{
		"group-id":    validation.Validate(groupID, validation.Required),
		"category-id": validation.Validate(categoryID, validation.Required),
		"office":      validation.Validate(office, validation.Required),
	}); err != nil {
		return err
	}
	q := api.NewQuery().
		Set("office", office).
		Set("category-id", categoryID)
	return s.Delete(ctx, groupEndpoint+"/"+groupID, q, api.VersionJSON)
}
