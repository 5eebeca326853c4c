package assist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

// Handler exposes the chat and voice endpoints.
type Handler struct {
	system   System
	sessions sessions.System
	logger   *slog.Logger
}

// NewHandler creates the assist handler.
func NewHandler(system System, store sessions.System, logger *slog.Logger) *Handler {
	return &Handler{
		system:   system,
		sessions: store,
		logger:   logger.With("handler", "assist"),
	}
}

// Group returns the assist route group.
func (h *Handler) Group() routes.Group {
	return routes.Group{
		Prefix:      "/api/assist",
		Description: "Accessibility widgets",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/chat", Handler: h.chat},
			{Method: http.MethodGet, Pattern: "/chat/{uuid}/transcript", Handler: h.transcript},
			{Method: http.MethodGet, Pattern: "/voice/{uuid}", Handler: h.getVoice},
			{Method: http.MethodPut, Pattern: "/voice/{uuid}", Handler: h.putVoice},
			{Method: http.MethodGet, Pattern: "/voice/script", Handler: h.script},
		},
	}
}

type chatRequest struct {
	UUID    string `json:"uuid"`
	Message string `json:"message"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	id, err := uuid.Parse(req.UUID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	reply, err := h.system.Chat(r.Context(), id, req.Message)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) transcript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	entries := h.system.Transcript(id)
	if entries == nil {
		entries = []Entry{}
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

type voiceResponse struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) getVoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, sessions.ErrNotFound)
		return
	}

	session, err := h.sessions.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, voiceResponse{Enabled: session.VoiceEnabled})
}

func (h *Handler) putVoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, sessions.ErrNotFound)
		return
	}

	var req voiceResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.sessions.SetVoiceEnabled(r.Context(), id, req.Enabled); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, voiceResponse{Enabled: req.Enabled})
}

func (h *Handler) script(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")

	script, err := VoiceScript(page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"page":   page,
		"script": script,
	})
}
