package overlay

import (
	"errors"
	"net/http"

	"github.com/caresign/caresign/internal/sessions"
)

// Domain errors for overlay rendering.
var (
	// ErrTransform is the generic render failure. The previously stored
	// render stays in place when this is returned.
	ErrTransform = errors.New("could not update document")
	// ErrNotFillable rejects answer submission for plain review documents.
	ErrNotFillable = errors.New("document has no fillable fields")
)

// MapHTTPStatus converts overlay errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFillable) {
		return http.StatusBadRequest
	}
	if errors.Is(err, sessions.ErrSuperseded) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrTransform) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
