package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// reviewService implements the ReviewService interface
type reviewService struct {
	reviewRepo repositories.ReviewRepository
	docRepo    repositories.DocumentRepository
	logger     *slog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		docRepo:    docRepo,
		logger:     logger,
	}
}

// CreateReview stores a manually submitted review
func (s *reviewService) CreateReview(ctx context.Context, req *services.CreateReviewRequest) (*models.Review, error) {
	req.DocumentID = strings.TrimSpace(req.DocumentID)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.docRepo.GetByID(ctx, req.DocumentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s does not exist", domain.ErrValidation, req.DocumentID)
		}
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		DocumentID: req.DocumentID,
		Conflicts:  req.Conflicts,
		Gaps:       req.Gaps,
		Irrelevant: req.Irrelevant,
		CreatedAt:  time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		"id", review.ID,
		"document_id", review.DocumentID,
	)

	return review, nil
}

// ListReviews retrieves all reviews, newest first
func (s *reviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviewRepo.List(ctx)
}

// UpdateCorrections sets or clears the reviewer's corrections
func (s *reviewService) UpdateCorrections(ctx context.Context, id string, req *services.UpdateCorrectionsRequest) (*models.Review, error) {
	if err := s.reviewRepo.UpdateCorrections(ctx, id, req.Corrections); err != nil {
		return nil, err
	}

	s.logger.Info("review corrections updated",
		"id", id,
		"cleared", req.Corrections == nil,
	)

	return s.reviewRepo.GetByID(ctx, id)
}
