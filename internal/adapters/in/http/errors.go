package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/pkg/errs"
)

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// mapError translates domain errors to HTTP status and message. Internal
// failures are reported without detail; nothing from the error chain
// reaches the client.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrInsufficientFunds):
		return http.StatusBadRequest, "payment declined: insufficient funds"
	case errors.Is(err, errs.ErrTransitionNotAllowed),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
