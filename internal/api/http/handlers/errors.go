package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/items-api/internal/service"
	apperrors "github.com/spec-kit/items-api/pkg/util/errorutil"
)

// mapServiceError translates service sentinels into rendered domain errors.
// Anything unrecognized falls through and is rendered as an internal error.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewUnauthorized(err)
	case errors.Is(err, service.ErrEmailTaken):
		return apperrors.NewConflict("email already registered", nil)
	case errors.Is(err, service.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, service.ErrItemNotFound):
		return apperrors.NewNotFound("item", nil)
	}
	return err
}

func validationError(err error) error {
	details := map[string]any{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
