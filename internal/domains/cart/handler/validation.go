package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// isValidationError reports whether err came from request validation
func isValidationError(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}
