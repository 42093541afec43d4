package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

// playbookService implements the PlaybookService interface
type playbookService struct {
	playbookRepo repositories.PlaybookRepository
	extractor    TextExtractor
	logger       *slog.Logger
}

// NewPlaybookService creates a new playbook service
func NewPlaybookService(
	playbookRepo repositories.PlaybookRepository,
	extractor TextExtractor,
	logger *slog.Logger,
) services.PlaybookService {
	return &playbookService{
		playbookRepo: playbookRepo,
		extractor:    extractor,
		logger:       logger,
	}
}

// CreatePlaybook creates a new playbook. A name that matches an existing
// playbook case-insensitively is a conflict.
func (s *playbookService) CreatePlaybook(ctx context.Context, req *services.CreatePlaybookRequest) (*models.Playbook, error) {
	req.Name = strings.TrimSpace(req.Name)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxPlaybookNameLength)),
		validation.Field(&req.Content, validation.Required, validation.By(notBlank)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	playbook := &models.Playbook{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.playbookRepo.Create(ctx, playbook); err != nil {
		return nil, err
	}

	s.logger.Info("playbook created",
		"id", playbook.ID,
		"name", playbook.Name,
	)

	return playbook, nil
}

// UploadPlaybook extracts the rules text from a file. The name defaults to
// the file name without its extension.
func (s *playbookService) UploadPlaybook(ctx context.Context, req *services.UploadPlaybookRequest) (*models.Playbook, error) {
	if err := ingest.CheckSize(req.Size); err != nil {
		return nil, err
	}

	content, err := s.extractor.Extract(ctx, ingest.File{
		Name:        req.Filename,
		ContentType: req.ContentType,
		Data:        req.Data,
	})
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = ingest.DisplayName(req.Filename)
	}

	return s.CreatePlaybook(ctx, &services.CreatePlaybookRequest{
		Name:    name,
		Content: content,
	})
}

// GetPlaybook retrieves a playbook by ID
func (s *playbookService) GetPlaybook(ctx context.Context, id string) (*models.Playbook, error) {
	return s.playbookRepo.GetByID(ctx, id)
}

// ListPlaybooks retrieves all playbooks in creation order
func (s *playbookService) ListPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	return s.playbookRepo.List(ctx)
}

// UpdatePlaybook replaces a playbook's name and content
func (s *playbookService) UpdatePlaybook(ctx context.Context, id string, req *services.UpdatePlaybookRequest) (*models.Playbook, error) {
	req.Name = strings.TrimSpace(req.Name)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxPlaybookNameLength)),
		validation.Field(&req.Content, validation.Required, validation.By(notBlank)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	playbook, err := s.playbookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	playbook.Name = req.Name
	playbook.Content = req.Content
	playbook.UpdatedAt = time.Now()

	if err := s.playbookRepo.Update(ctx, playbook); err != nil {
		return nil, err
	}

	s.logger.Info("playbook updated",
		"id", playbook.ID,
		"name", playbook.Name,
	)

	return playbook, nil
}

// DeletePlaybook removes a playbook. Documents that reference it keep the
// dangling id and fail analysis with not found.
func (s *playbookService) DeletePlaybook(ctx context.Context, id string) error {
	if err := s.playbookRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("playbook deleted", "id", id)
	return nil
}
