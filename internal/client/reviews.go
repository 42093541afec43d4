package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// ListReviews returns every review, newest first.
func (c *Client) ListReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.doJSON(ctx, http.MethodGet, "/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview stores a manually written review.
func (c *Client) CreateReview(ctx context.Context, req *services.CreateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := c.doJSON(ctx, http.MethodPost, "/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateCorrections sets a review's corrections, or clears them when corrections is nil.
func (c *Client) UpdateCorrections(ctx context.Context, id string, corrections *string) (*models.Review, error) {
	// Pointer marshals to null so the server can tell "clear" from "missing".
	body := struct {
		Corrections *string `json:"corrections"`
	}{Corrections: corrections}

	var review models.Review
	if err := c.doJSON(ctx, http.MethodPatch, "/reviews/"+url.PathEscape(id), body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetAnalysis returns the latest review of a document. A document that was
// never analysed yields an APIError with status 404.
func (c *Client) GetAnalysis(ctx context.Context, documentID string) (*models.Review, error) {
	var review models.Review
	if err := c.doJSON(ctx, http.MethodGet, "/analyze/"+url.PathEscape(documentID), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Analyze runs a fresh analysis of a document against its playbook.
func (c *Client) Analyze(ctx context.Context, documentID string) (*models.Review, error) {
	var review models.Review
	if err := c.doJSON(ctx, http.MethodPost, "/analyze/"+url.PathEscape(documentID), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
