package services

import (
	"context"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

// CreateReviewRequest represents a manually submitted review
type CreateReviewRequest struct {
	DocumentID string `json:"document_id"`
	Conflicts  string `json:"conflicts"`
	Gaps       string `json:"gaps"`
	Irrelevant string `json:"irrelevant"`
}

// UpdateCorrectionsRequest sets (Value != nil) or clears (Value == nil) corrections
type UpdateCorrectionsRequest struct {
	Corrections *string
}

// ReviewService handles review business logic
type ReviewService interface {
	CreateReview(ctx context.Context, req *CreateReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	UpdateCorrections(ctx context.Context, id string, req *UpdateCorrectionsRequest) (*models.Review, error)
}

// AnalysisService runs and retrieves playbook analyses of documents
type AnalysisService interface {
	// GetAnalysis returns the latest review of a document (ErrNotFound if none)
	GetAnalysis(ctx context.Context, documentID string) (*models.Review, error)

	// Analyze checks the document against its playbook and stores a new review
	Analyze(ctx context.Context, documentID string) (*models.Review, error)
}

// Sections is the structured output of one analysis run
type Sections struct {
	Conflicts  string
	Gaps       string
	Irrelevant string
}

// Empty reports whether no section has content
func (s Sections) Empty() bool {
	return s.Conflicts == "" && s.Gaps == "" && s.Irrelevant == ""
}

// Analyzer compares document text against playbook text
type Analyzer interface {
	Analyze(ctx context.Context, playbookText, documentText string) (Sections, error)
}
