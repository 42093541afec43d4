package handler

import (
	"log/slog"
	"net/http"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/httputil"
)

// ReviewHandler handles review and analysis HTTP requests
type ReviewHandler struct {
	reviews  services.ReviewService
	analysis services.AnalysisService
	logger   *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews services.ReviewService, analysis services.AnalysisService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		analysis: analysis,
		logger:   logger,
	}
}

// ListReviews returns all reviews, newest first
// GET /reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListReviews(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, reviews)
}

// CreateReview stores a review submitted by the client
// POST /reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req services.CreateReviewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, review)
}

// updateCorrectionsBody uses OptionalString so that null clears corrections
// and an absent field is rejected.
type updateCorrectionsBody struct {
	Corrections httputil.OptionalString `json:"corrections"`
}

// UpdateCorrections sets or clears the reviewer's corrections
// PATCH /reviews/{id}
func (h *ReviewHandler) UpdateCorrections(w http.ResponseWriter, r *http.Request) {
	var body updateCorrectionsBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !body.Corrections.Present {
		httputil.RespondError(w, http.StatusBadRequest, "corrections is required (use null to clear)")
		return
	}

	review, err := h.reviews.UpdateCorrections(r.Context(), r.PathValue("id"), &services.UpdateCorrectionsRequest{
		Corrections: body.Corrections.Value,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, review)
}

// GetAnalysis returns the latest review of a document
// GET /analyze/{id}
func (h *ReviewHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	review, err := h.analysis.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, review)
}

// Analyze runs the playbook analysis of a document
// POST /analyze/{id}
func (h *ReviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("id")
	h.logger.Info("analysis requested", "document_id", documentID)

	review, err := h.analysis.Analyze(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, review)
}
