package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for session operations.
var (
	ErrNotFound         = errors.New("session not found")
	ErrNotVerified      = errors.New("session not verified")
	ErrSignatureMissing = errors.New("missing document or signature")
	ErrSignedMissing    = errors.New("missing signed document")
	ErrSuperseded       = errors.New("overlay result superseded")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNotVerified) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrSignatureMissing) || errors.Is(err, ErrSignedMissing) {
		return http.StatusPreconditionFailed
	}
	if errors.Is(err, ErrSuperseded) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
