package services

import (
	"context"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

// CreatePlaybookRequest represents a request to create a playbook
type CreatePlaybookRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// UpdatePlaybookRequest represents a request to replace a playbook
type UpdatePlaybookRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// UploadPlaybookRequest represents a multipart playbook upload.
// Name defaults to the file name without extension.
type UploadPlaybookRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	Name        string
}

// PlaybookService defines business logic operations for playbooks
type PlaybookService interface {
	CreatePlaybook(ctx context.Context, req *CreatePlaybookRequest) (*models.Playbook, error)
	UploadPlaybook(ctx context.Context, req *UploadPlaybookRequest) (*models.Playbook, error)
	GetPlaybook(ctx context.Context, id string) (*models.Playbook, error)
	ListPlaybooks(ctx context.Context) ([]models.Playbook, error)
	UpdatePlaybook(ctx context.Context, id string, req *UpdatePlaybookRequest) (*models.Playbook, error)

	// DeletePlaybook removes a playbook without touching documents or reviews
	// that reference it
	DeletePlaybook(ctx context.Context, id string) error
}
