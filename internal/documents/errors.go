package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrEmptyDocument = errors.New("empty document")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidUpload) || errors.Is(err, ErrEmptyDocument) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
