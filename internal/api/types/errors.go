package types

import (
	"net/http"

	appErr "github.com/recipevault/engine/pkg/errors"
)

// FromAppError converts an error into the wire error shape.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*appErr.AppError); ok {
		return &APIError{Code: string(e.Code), Message: e.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}

// StatusForError maps error codes onto HTTP statuses. Duplicate and
// validation failures both surface as 400 per the API contract.
func StatusForError(err error) int {
	switch {
	case appErr.IsCode(err, appErr.CodeInvalid),
		appErr.IsCode(err, appErr.CodeAlreadyExists),
		appErr.IsCode(err, appErr.CodeConflict):
		return http.StatusBadRequest
	case appErr.IsCode(err, appErr.CodeUnauthorized):
		return http.StatusUnauthorized
	case appErr.IsCode(err, appErr.CodeForbidden):
		return http.StatusForbidden
	case appErr.IsCode(err, appErr.CodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
