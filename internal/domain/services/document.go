package services

import (
	"context"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument stores a document with status "processing"
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// UploadDocument extracts text from a file and stores it as a document
	UploadDocument(ctx context.Context, req *UploadDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// ListDocuments retrieves all documents, newest first
	ListDocuments(ctx context.Context) ([]models.Document, error)

	// DeleteDocument deletes a document
	DeleteDocument(ctx context.Context, id string) error
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	PlaybookID string `json:"playbook_id"`
	Status     string `json:"status,omitempty"` // Accepted for compatibility, always stored as "processing"
	FileURL    string `json:"file_url,omitempty"`
}

// UploadDocumentRequest represents a multipart document upload
type UploadDocumentRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	PlaybookID  string
}
