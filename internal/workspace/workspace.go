// Package workspace holds the client-side page controllers: upload forms,
// optimistic record lists, the reviews list, the analysis view and the
// dashboard. Controllers are not safe for concurrent use.
package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

// DocumentAPI is the backend surface the documents page uses.
type DocumentAPI interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListPlaybooks(ctx context.Context) ([]models.Playbook, error)
}

// PlaybookAPI is the backend surface the playbooks page uses.
type PlaybookAPI interface {
	ListPlaybooks(ctx context.Context) ([]models.Playbook, error)
	CreatePlaybook(ctx context.Context, req *services.CreatePlaybookRequest) (*models.Playbook, error)
	UpdatePlaybook(ctx context.Context, id string, req *services.UpdatePlaybookRequest) (*models.Playbook, error)
	DeletePlaybook(ctx context.Context, id string) error
}

// ReviewAPI is the backend surface the reviews page uses.
type ReviewAPI interface {
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
}

// AnalysisAPI is the backend surface the analysis view uses.
type AnalysisAPI interface {
	GetAnalysis(ctx context.Context, documentID string) (*models.Review, error)
	Analyze(ctx context.Context, documentID string) (*models.Review, error)
}

// StatsAPI is the backend surface the dashboard uses.
type StatsAPI interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	ListPlaybooks(ctx context.Context) ([]models.Playbook, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
}

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, file ingest.File) (string, error)
}

// Navigation asks the caller to move to another screen.
type Navigation struct {
	Route string
}

// AnalysisRoute is where a freshly uploaded document is opened.
func AnalysisRoute(documentID string) Navigation {
	return Navigation{Route: "/analysis/" + documentID}
}

// FormErrorKind groups user-facing failures.
type FormErrorKind string

const (
	KindValidation FormErrorKind = "validation"
	KindExtraction FormErrorKind = "extraction"
	KindNetwork    FormErrorKind = "network"
)

// FormError is a failure shown to the user. Err, when set, is the cause.
type FormError struct {
	Kind    FormErrorKind
	Message string
	Err     error
}

func (e *FormError) Error() string {
	return e.Message
}

func (e *FormError) Unwrap() error {
	return e.Err
}

func validationError(message string) *FormError {
	return &FormError{Kind: KindValidation, Message: message}
}

func networkError(message string, err error) *FormError {
	return &FormError{Kind: KindNetwork, Message: message, Err: err}
}

// ErrNoSuchRecord is returned when an id is not in the local list.
var ErrNoSuchRecord = errors.New("no such record")

func noSuchRecord(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNoSuchRecord)
}
