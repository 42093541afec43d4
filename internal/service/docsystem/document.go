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

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

// TextExtractor turns an uploaded file into plain text
type TextExtractor interface {
	Extract(ctx context.Context, file ingest.File) (string, error)
}

// documentService implements the DocumentService interface
type documentService struct {
	docRepo      repositories.DocumentRepository
	playbookRepo repositories.PlaybookRepository
	extractor    TextExtractor
	logger       *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	playbookRepo repositories.PlaybookRepository,
	extractor TextExtractor,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:      docRepo,
		playbookRepo: playbookRepo,
		extractor:    extractor,
		logger:       logger,
	}
}

// CreateDocument stores a document. Status always starts as "processing"
// regardless of what the client sends.
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.PlaybookID = strings.TrimSpace(req.PlaybookID)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.playbookRepo.GetByID(ctx, req.PlaybookID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: playbook %s does not exist", domain.ErrValidation, req.PlaybookID)
		}
		return nil, err
	}

	now := time.Now()
	doc := &models.Document{
		ID:         uuid.NewString(),
		PlaybookID: req.PlaybookID,
		Name:       req.Name,
		Content:    req.Content,
		Status:     models.DocumentStatusProcessing,
		FileURL:    req.FileURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"playbook_id", doc.PlaybookID,
		"chars", len(doc.Content),
	)

	return doc, nil
}

// UploadDocument extracts text from the uploaded file and stores it under
// the file's display name.
func (s *documentService) UploadDocument(ctx context.Context, req *services.UploadDocumentRequest) (*models.Document, error) {
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

	return s.CreateDocument(ctx, &services.CreateDocumentRequest{
		Name:       ingest.DisplayName(req.Filename),
		Content:    content,
		PlaybookID: req.PlaybookID,
	})
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// ListDocuments retrieves all documents, newest first
func (s *documentService) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return s.docRepo.List(ctx)
}

// DeleteDocument deletes a document and its reviews
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.Content, validation.Required, validation.By(notBlank)),
		validation.Field(&req.PlaybookID, validation.Required),
	)
}
