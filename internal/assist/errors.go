package assist

import (
	"errors"
	"net/http"
)

// Domain errors for the accessibility widgets.
var (
	ErrUnknownPage  = errors.New("no narration script for page")
	ErrEmptyMessage = errors.New("empty message")
)

// MapHTTPStatus converts assist errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownPage) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyMessage) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
