package overlay

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/documents"
	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

// Handler exposes answer submission for fillable documents.
type Handler struct {
	system   System
	sessions sessions.System
	logger   *slog.Logger
}

// NewHandler creates the overlay handler.
func NewHandler(system System, store sessions.System, logger *slog.Logger) *Handler {
	return &Handler{
		system:   system,
		sessions: store,
		logger:   logger.With("handler", "overlay"),
	}
}

// Group returns the overlay route group.
func (h *Handler) Group() routes.Group {
	return routes.Group{
		Prefix:      "/api/Pdf",
		Description: "Answer overlay",
		Routes: []routes.Route{
			{Method: http.MethodPut, Pattern: "/{uuid}/answers", Handler: h.putAnswers},
		},
	}
}

type answersRequest struct {
	Answers map[string]string `json:"answers"`
}

type answersResponse struct {
	PdfBase64 string `json:"pdfBase64"`
}

func (h *Handler) putAnswers(w http.ResponseWriter, r *http.Request) {
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

	var req answersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	rendered, err := h.system.Render(r.Context(), id, req.Answers)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
			return
		}
		if errors.Is(err, sessions.ErrNotFound) || errors.Is(err, sessions.ErrSuperseded) {
			handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, answersResponse{
		PdfBase64: base64.StdEncoding.EncodeToString(rendered),
	})
}
