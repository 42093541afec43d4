package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/httputil"
)

// PlaybookHandler handles playbook HTTP requests
type PlaybookHandler struct {
	service services.PlaybookService
	logger  *slog.Logger
}

// NewPlaybookHandler creates a new playbook handler
func NewPlaybookHandler(service services.PlaybookService, logger *slog.Logger) *PlaybookHandler {
	return &PlaybookHandler{
		service: service,
		logger:  logger,
	}
}

// ListPlaybooks returns all playbooks in creation order
// GET /playbooks
func (h *PlaybookHandler) ListPlaybooks(w http.ResponseWriter, r *http.Request) {
	playbooks, err := h.service.ListPlaybooks(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, playbooks)
}

// CreatePlaybook creates a playbook from name and text
// POST /playbooks
func (h *PlaybookHandler) CreatePlaybook(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePlaybookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playbook, err := h.service.CreatePlaybook(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, playbook)
}

// UploadPlaybook creates a playbook from a PDF or Word file
// POST /playbooks/upload
//
// Form fields:
//   - file: required, at most 10MB
//   - name: optional, defaults to the file name without extension
func (h *PlaybookHandler) UploadPlaybook(w http.ResponseWriter, r *http.Request) {
	file, err := httputil.ReadFormFile(w, r, "file")
	if err != nil {
		handleError(w, err)
		return
	}

	playbook, err := h.service.UploadPlaybook(r.Context(), &services.UploadPlaybookRequest{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		Data:        file.Data,
		Name:        r.FormValue("name"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, playbook)
}

// GetPlaybook returns one playbook. With ?download=1 the content is sent
// as a plain-text attachment.
// GET /playbooks/{id}
func (h *PlaybookHandler) GetPlaybook(w http.ResponseWriter, r *http.Request) {
	playbook, err := h.service.GetPlaybook(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", playbook.Name+".txt"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(playbook.Content))
		return
	}

	httputil.RespondJSON(w, http.StatusOK, playbook)
}

// UpdatePlaybook replaces name and content
// PUT /playbooks/{id}
func (h *PlaybookHandler) UpdatePlaybook(w http.ResponseWriter, r *http.Request) {
	var req services.UpdatePlaybookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playbook, err := h.service.UpdatePlaybook(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, playbook)
}

// DeletePlaybook removes a playbook
// DELETE /playbooks/{id}
func (h *PlaybookHandler) DeletePlaybook(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlaybook(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
