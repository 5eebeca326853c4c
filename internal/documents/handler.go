package documents

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

// Handler exposes document retrieval, provisioning, and signed upload.
type Handler struct {
	system    System
	sessions  sessions.System
	maxUpload int64
	logger    *slog.Logger
}

// NewHandler creates a document handler. maxUpload caps provisioning and
// signed-upload request bodies in bytes.
func NewHandler(system System, store sessions.System, maxUpload int64, logger *slog.Logger) *Handler {
	return &Handler{
		system:    system,
		sessions:  store,
		maxUpload: maxUpload,
		logger:    logger.With("handler", "documents"),
	}
}

// Group returns the document route group.
func (h *Handler) Group() routes.Group {
	return routes.Group{
		Prefix:      "/api/Pdf",
		Description: "Consent documents",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/{uuid}", Handler: h.get},
			{Method: http.MethodPost, Pattern: "/UploadSignedPdf/{uuid}", Handler: h.uploadSigned},
			{Method: http.MethodPost, Pattern: "", Handler: h.provision},
		},
	}
}

type pdfResponse struct {
	PdfBase64 string `json:"pdfBase64"`
	PdfName   string `json:"pdfName"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
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

	doc, data, err := h.system.LoadOriginal(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pdfResponse{
		PdfBase64: base64.StdEncoding.EncodeToString(data),
		PdfName:   doc.Name,
	})
}

type uploadRequest struct {
	Base64Pdf string `json:"Base64Pdf"`
}

func (h *Handler) uploadSigned(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
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

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	data, err := DecodeBase64PDF(req.Base64Pdf)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	key, err := h.system.StoreSigned(r.Context(), id, data)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.sessions.SaveSigned(r.Context(), id, key); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}
	if err := h.sessions.ClearTransient(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": "Upload complete"})
}

func (h *Handler) provision(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	doc, err := h.system.Provision(r.Context(), ProvisionInput{
		Name:     name,
		Birthday: r.FormValue("birthday"),
		PIN:      r.FormValue("pin"),
		Data:     data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":        doc.ID,
		"name":      doc.Name,
		"pageCount": doc.PageCount,
		"variant":   doc.Variant(),
	})
}

// DecodeBase64PDF decodes a base64 PDF payload, stripping a leading
// data-URL prefix ("data:application/pdf;base64,...") if present.
func DecodeBase64PDF(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, ErrEmptyDocument
	}
	if strings.HasPrefix(encoded, "data:") {
		_, rest, found := strings.Cut(encoded, ",")
		if !found {
			return nil, ErrInvalidUpload
		}
		encoded = rest
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrInvalidUpload, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	return data, nil
}
