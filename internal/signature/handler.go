package signature

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/documents"
	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/internal/storage"
	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

// Handler accepts drawn signatures for a verified session.
type Handler struct {
	blobs    storage.System
	sessions sessions.System
	now      func() time.Time
	logger   *slog.Logger
}

// NewHandler creates the signature handler.
func NewHandler(blobs storage.System, store sessions.System, logger *slog.Logger) *Handler {
	return &Handler{
		blobs:    blobs,
		sessions: store,
		now:      time.Now,
		logger:   logger.With("handler", "signature"),
	}
}

// Group returns the signature route group.
func (h *Handler) Group() routes.Group {
	return routes.Group{
		Prefix:      "/api/Pdf",
		Description: "Signature capture",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/{uuid}/signature", Handler: h.post},
		},
	}
}

type signatureRequest struct {
	Signature string `json:"signature"`
	SignedAt  string `json:"signedAt"`
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
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

	var req signatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	artifact, err := Decode(req.Signature, req.SignedAt, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	key := documents.SignatureKey(id)
	if err := h.blobs.Store(r.Context(), key, artifact.PNG); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Errorf("store signature: %w", err))
		return
	}

	if err := h.sessions.SaveSignature(r.Context(), id, key, artifact.SignedAt); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
