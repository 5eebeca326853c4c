package merge

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/documents"
	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

// Handler exposes signed-document production.
type Handler struct {
	system   System
	sessions sessions.System
	logger   *slog.Logger
}

// NewHandler creates the merge handler.
func NewHandler(system System, store sessions.System, logger *slog.Logger) *Handler {
	return &Handler{
		system:   system,
		sessions: store,
		logger:   logger.With("handler", "merge"),
	}
}

// Group returns the merge route group.
func (h *Handler) Group() routes.Group {
	return routes.Group{
		Prefix:      "/api/Pdf",
		Description: "Signed document production",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/{uuid}/signed", Handler: h.getSigned},
		},
	}
}

type signedResponse struct {
	PdfBase64 string `json:"pdfBase64"`
}

func (h *Handler) getSigned(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, documents.ErrNotFound)
		return
	}

	session, err := h.sessions.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}
	if err := session.RequireVerified(); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	merged, err := h.system.Produce(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, signedResponse{
		PdfBase64: base64.StdEncoding.EncodeToString(merged),
	})
}
