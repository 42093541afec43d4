package repositories

import (
	"context"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create inserts a document; ID and timestamps must already be set
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// List retrieves all documents, newest first
	List(ctx context.Context) ([]models.Document, error)

	// UpdateStatus sets the processing status of a document
	UpdateStatus(ctx context.Context, id string, status models.DocumentStatus) error

	// Delete removes a document
	Delete(ctx context.Context, id string) error
}

// PlaybookRepository defines data access operations for playbooks
type PlaybookRepository interface {
	// Create inserts a playbook; returns *domain.ConflictError on duplicate name
	Create(ctx context.Context, playbook *models.Playbook) error

	// GetByID retrieves a playbook by ID
	GetByID(ctx context.Context, id string) (*models.Playbook, error)

	// List retrieves all playbooks in creation order
	List(ctx context.Context) ([]models.Playbook, error)

	// Update replaces name and content
	Update(ctx context.Context, playbook *models.Playbook) error

	// Delete removes a playbook. Documents referencing it are left untouched.
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines data access operations for reviews
type ReviewRepository interface {
	// Create inserts a review
	Create(ctx context.Context, review *models.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*models.Review, error)

	// GetLatestByDocument retrieves the most recent review of a document
	GetLatestByDocument(ctx context.Context, documentID string) (*models.Review, error)

	// List retrieves all reviews, newest first
	List(ctx context.Context) ([]models.Review, error)

	// UpdateCorrections sets or clears (nil) the reviewer's corrections
	UpdateCorrections(ctx context.Context, id string, corrections *string) error
}
