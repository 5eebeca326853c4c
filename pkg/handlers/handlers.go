// Package handlers holds the JSON response helpers shared by every HTTP
// handler in the service. All responses, success and failure alike, go
// through these so the wire shape stays uniform.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// RespondError logs err and writes it as {"error": message} with the
// given status. The logged error may carry more detail than the message
// sent to the client.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "error", err, "status", status)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}
