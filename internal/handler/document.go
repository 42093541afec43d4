package handler

import (
	"log/slog"
	"net/http"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	service services.DocumentService
	logger  *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger,
	}
}

// ListDocuments returns all documents, newest first
// GET /documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// CreateDocument stores a document whose text was extracted client-side
// POST /documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// UploadDocument extracts text from an uploaded PDF or Word file
// POST /documents/upload
//
// Form fields:
//   - file: required, at most 10MB
//   - playbook_id: required
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	file, err := httputil.ReadFormFile(w, r, "file")
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("document upload received",
		"filename", file.Filename,
		"content_type", file.ContentType,
		"size", file.Size,
	)

	doc, err := h.service.UploadDocument(r.Context(), &services.UploadDocumentRequest{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		Data:        file.Data,
		PlaybookID:  r.FormValue("playbook_id"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument returns one document
// GET /documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document
// DELETE /documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
