// Package apperr defines the error taxonomy shared by all domain services.
// Services wrap these sentinels with context via fmt.Errorf("...: %w", err);
// handlers translate them to HTTP statuses with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks missing or malformed client input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate unique field.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks a credential mismatch.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUpstreamUnavailable marks a failed or not-yet-loaded external model.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrStorage marks a persistence layer fault.
	ErrStorage = errors.New("storage error")
)

// Status maps an error to the HTTP status code handlers should respond with.
// Unknown errors map to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
