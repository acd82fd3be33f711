package handlers

import (
	"errors"
	"net/http"

	"github.com/S6-InstaClone/AccountService/internal/models"
)

// MapErrorToHTTPStatus translates domain errors into an error code and HTTP
// status. Anything unrecognized is an internal error and keeps its detail
// out of the response.
func MapErrorToHTTPStatus(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return "UNAUTHORIZED", http.StatusUnauthorized
	case errors.Is(err, models.ErrNotProfileOwner):
		return "FORBIDDEN", http.StatusForbidden
	case errors.Is(err, models.ErrProfileNotFound):
		return "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, models.ErrProfileExists):
		return "CONFLICT", http.StatusConflict
	case errors.Is(err, models.ErrInvalidArgument):
		return "INVALID_ARGUMENT", http.StatusBadRequest
	default:
		return "INTERNAL_ERROR", http.StatusInternalServerError
	}
}

func publicMessage(err error, code string) string {
	if code == "INTERNAL_ERROR" {
		return "internal error"
	}
	return err.Error()
}
