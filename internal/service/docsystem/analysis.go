package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// analysisService implements the AnalysisService interface
type analysisService struct {
	docRepo      repositories.DocumentRepository
	playbookRepo repositories.PlaybookRepository
	reviewRepo   repositories.ReviewRepository
	txManager    repositories.TransactionManager
	analyzer     services.Analyzer
	logger       *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	docRepo repositories.DocumentRepository,
	playbookRepo repositories.PlaybookRepository,
	reviewRepo repositories.ReviewRepository,
	txManager repositories.TransactionManager,
	analyzer services.Analyzer,
	logger *slog.Logger,
) services.AnalysisService {
	return &analysisService{
		docRepo:      docRepo,
		playbookRepo: playbookRepo,
		reviewRepo:   reviewRepo,
		txManager:    txManager,
		analyzer:     analyzer,
		logger:       logger,
	}
}

// GetAnalysis returns the newest review of a document
func (s *analysisService) GetAnalysis(ctx context.Context, documentID string) (*models.Review, error) {
	return s.reviewRepo.GetLatestByDocument(ctx, documentID)
}

// Analyze checks a document against its playbook, stores the review and
// marks the document processed. On failure the document is marked failed.
func (s *analysisService) Analyze(ctx context.Context, documentID string) (*models.Review, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	playbook, err := s.playbookRepo.GetByID(ctx, doc.PlaybookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("playbook %s for document %s: %w", doc.PlaybookID, doc.ID, domain.ErrNotFound)
		}
		return nil, err
	}

	start := time.Now()
	sections, err := s.analyzer.Analyze(ctx, playbook.Content, doc.Content)
	if err != nil {
		s.logger.Warn("analysis failed",
			"document_id", doc.ID,
			"playbook_id", playbook.ID,
			"error", err,
		)
		s.markFailed(ctx, doc.ID)
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Conflicts:  sections.Conflicts,
		Gaps:       sections.Gaps,
		Irrelevant: sections.Irrelevant,
		CreatedAt:  time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return err
		}
		return s.docRepo.UpdateStatus(ctx, doc.ID, models.DocumentStatusProcessed)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document analyzed",
		"document_id", doc.ID,
		"review_id", review.ID,
		"redlines", len(review.Redlines()),
		"duration", time.Since(start),
	)

	return review, nil
}

// markFailed records a failed analysis even if the request was cancelled.
func (s *analysisService) markFailed(ctx context.Context, documentID string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.docRepo.UpdateStatus(ctx, documentID, models.DocumentStatusFailed); err != nil {
		s.logger.Error("failed to mark document failed",
			"document_id", documentID,
			"error", err,
		)
	}
}
