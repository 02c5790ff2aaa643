// Package apperr holds the error taxonomy shared by services and handlers.
// Services wrap these sentinels with context; the HTTP layer maps them to
// status codes without inspecting messages.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInfrastructure = errors.New("infrastructure failure")
)

// HTTPStatus maps a wrapped sentinel to its response code. Unknown errors
// are treated as infrastructure failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
