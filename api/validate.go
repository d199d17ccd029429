package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateParams checks endpoint-specific required parameters before any
// network I/O. The wrappers pass a validation.Errors map keyed by parameter
// name; any failure comes back as a ValidationError.
func ValidateParams(errs validation.Errors) error {
	if err := errs.Filter(); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
