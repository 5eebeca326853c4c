package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(cfg *CORSConfig) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return CORS(cfg)(next)
}

func TestCORSDisabledPassesThrough(t *testing.T) {
	h := corsHandler(&CORSConfig{Enabled: false})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/login", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers set while disabled")
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	h := corsHandler(&CORSConfig{
		Enabled:        true,
		Origins:        []string{"http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("allow-methods = %q", got)
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	h := corsHandler(&CORSConfig{Enabled: true, Origins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin echoed back")
	}
}

func TestCORSWildcardOrigin(t *testing.T) {
	h := corsHandler(&CORSConfig{Enabled: true, Origins: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	h := corsHandler(&CORSConfig{Enabled: true, Origins: []string{"*"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTrimSlash(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := TrimSlash()(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/login/?x=1", nil))

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
	if got := rec.Header().Get("Location"); got != "/api/login?x=1" {
		t.Errorf("location = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("root redirected: %d", rec.Code)
	}
}
