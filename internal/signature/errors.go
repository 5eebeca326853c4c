package signature

import (
	"errors"
	"net/http"
)

// Domain errors for signature capture.
var (
	ErrBlank       = errors.New("signature is blank")
	ErrInvalidData = errors.New("invalid signature data")
)

// MapHTTPStatus converts signature errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrBlank) || errors.Is(err, ErrInvalidData) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
