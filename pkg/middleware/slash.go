package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash returns middleware that redirects "/path/" to "/path" so each
// route pattern only has to be registered once. The root path "/" stays
// untouched, and the query string survives the redirect.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if len(path) <= 1 || !strings.HasSuffix(path, "/") {
				next.ServeHTTP(w, r)
				return
			}

			target := strings.TrimSuffix(path, "/")
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})
	}
}
