package verify

import (
	"errors"
	"net/http"
)

// Verification errors. The rejection errors are deliberately generic:
// the same error covers malformed input, wrong credentials, and unknown
// UUIDs. ErrUnavailable is different in kind: it reports an
// infrastructure failure during a credential check and is never folded
// into a rejection.
var (
	ErrBirthdayIncorrect = errors.New("your date of birth is incorrect")
	ErrPINInvalid        = errors.New("invalid pin")
	ErrUnavailable       = errors.New("verification unavailable")
)

// MapHTTPStatus converts verification errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrBirthdayIncorrect) || errors.Is(err, ErrPINInvalid) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
