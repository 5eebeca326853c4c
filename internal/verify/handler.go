package verify

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

// Display messages returned to the client. Each flow has exactly one
// failure message regardless of the underlying cause.
const (
	MsgBirthdayIncorrect = "Your Date of Birth is Incorrect"
	MsgPINInvalid        = "Invalid pin"
	MsgVerified          = "Verified!"
)

// Handler exposes the login endpoints.
type Handler struct {
	system        System
	redirectDelay time.Duration
	logger        *slog.Logger
}

// NewHandler creates a verification handler. redirectDelay is reported to
// the client as the pause before navigating to the document view.
func NewHandler(system System, redirectDelay time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		system:        system,
		redirectDelay: redirectDelay,
		logger:        logger.With("handler", "verify"),
	}
}

// Group returns the verification route group.
func (h *Handler) Group() routes.Group {
	return routes.Group{
		Prefix:      "/api",
		Description: "Identity verification",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/login", Handler: h.login},
			{Method: http.MethodPost, Pattern: "/doctorlogin", Handler: h.doctorLogin},
		},
	}
}

type loginRequest struct {
	UUID     string `json:"uuid"`
	Birthday string `json:"birthday"`
	Pin      string `json:"pin"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
	DelayMs  int64  `json:"delay_ms"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New(MsgBirthdayIncorrect))
		return
	}

	id, err := uuid.Parse(req.UUID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New(MsgBirthdayIncorrect))
		return
	}

	if err := h.system.VerifyPatient(r.Context(), id, req.Birthday); err != nil {
		h.respondFailure(w, err, MsgBirthdayIncorrect)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, loginResponse{
		Message:  MsgVerified,
		Redirect: "/pdf/" + id.String(),
		DelayMs:  h.redirectDelay.Milliseconds(),
	})
}

func (h *Handler) doctorLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New(MsgPINInvalid))
		return
	}

	id, err := uuid.Parse(req.UUID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New(MsgPINInvalid))
		return
	}

	if err := h.system.VerifyDoctor(r.Context(), id, req.Pin); err != nil {
		h.respondFailure(w, err, MsgPINInvalid)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, loginResponse{
		Message:  MsgVerified,
		Redirect: "/doctorsign/" + id.String(),
		DelayMs:  h.redirectDelay.Milliseconds(),
	})
}

func (h *Handler) respondFailure(w http.ResponseWriter, err error, message string) {
	status := MapHTTPStatus(err)
	if status == http.StatusUnauthorized {
		handlers.RespondError(w, h.logger, status, errors.New(message))
		return
	}
	handlers.RespondError(w, h.logger, status, errors.New("verification unavailable"))
}
