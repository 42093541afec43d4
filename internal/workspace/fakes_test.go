package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/client"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errOffline = errors.New("connection refused")

func notFound(detail string) error {
	return &client.APIError{Status: http.StatusNotFound, Detail: detail}
}

// fakeBackend is an in-memory stand-in for client.Client.
type fakeBackend struct {
	mu sync.Mutex

	documents []models.Document
	playbooks []models.Playbook
	reviews   []models.Review
	analyses  map[string]*models.Review

	nextID int
	calls  []string

	failList   error
	failCreate error
	failDelete error
	failUpdate error

	getErrs     []error // consumed one per GetAnalysis call
	analyzeErr  error
	onAnalyze   func()
	onGet       func()
	createNoIDs bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{analyses: map[string]*models.Review{}}
}

func (f *fakeBackend) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeBackend) ListDocuments(ctx context.Context) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListDocuments")
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]models.Document(nil), f.documents...), nil
}

func (f *fakeBackend) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateDocument")
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	doc := models.Document{
		Name:       req.Name,
		Content:    req.Content,
		PlaybookID: req.PlaybookID,
		Status:     models.DocumentStatusProcessing,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if !f.createNoIDs {
		doc.ID = f.id("doc")
	}
	f.documents = append([]models.Document{doc}, f.documents...)
	return &doc, nil
}

func (f *fakeBackend) DeleteDocument(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteDocument")
	if f.failDelete != nil {
		return f.failDelete
	}
	for i, d := range f.documents {
		if d.ID == id {
			f.documents = append(f.documents[:i], f.documents[i+1:]...)
			return nil
		}
	}
	return notFound("document not found")
}

func (f *fakeBackend) ListPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListPlaybooks")
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]models.Playbook(nil), f.playbooks...), nil
}

func (f *fakeBackend) CreatePlaybook(ctx context.Context, req *services.CreatePlaybookRequest) (*models.Playbook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreatePlaybook")
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	if f.createNoIDs {
		// An empty 2xx body decodes to the zero value.
		return &models.Playbook{}, nil
	}
	pb := models.Playbook{ID: f.id("pb"), Name: req.Name, Content: req.Content}
	f.playbooks = append(f.playbooks, pb)
	return &pb, nil
}

func (f *fakeBackend) UpdatePlaybook(ctx context.Context, id string, req *services.UpdatePlaybookRequest) (*models.Playbook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdatePlaybook")
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for i := range f.playbooks {
		if f.playbooks[i].ID == id {
			f.playbooks[i].Name = req.Name
			f.playbooks[i].Content = req.Content
			pb := f.playbooks[i]
			return &pb, nil
		}
	}
	return nil, notFound("playbook not found")
}

func (f *fakeBackend) DeletePlaybook(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeletePlaybook")
	if f.failDelete != nil {
		return f.failDelete
	}
	for i, p := range f.playbooks {
		if p.ID == id {
			f.playbooks = append(f.playbooks[:i], f.playbooks[i+1:]...)
			return nil
		}
	}
	return notFound("playbook not found")
}

func (f *fakeBackend) ListReviews(ctx context.Context) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListReviews")
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]models.Review(nil), f.reviews...), nil
}

func (f *fakeBackend) GetAnalysis(ctx context.Context, documentID string) (*models.Review, error) {
	f.mu.Lock()
	f.record("GetAnalysis")
	var err error
	if len(f.getErrs) > 0 {
		err, f.getErrs = f.getErrs[0], f.getErrs[1:]
	}
	review := f.analyses[documentID]
	hook := f.onGet
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, notFound("review not found")
	}
	return review, nil
}

func (f *fakeBackend) Analyze(ctx context.Context, documentID string) (*models.Review, error) {
	f.mu.Lock()
	f.record("Analyze")
	hook := f.onAnalyze
	err := f.analyzeErr
	var review *models.Review
	if err == nil {
		review = &models.Review{
			ID:         "rev-" + documentID,
			DocumentID: documentID,
			Conflicts:  "Termination notice is 10 days",
			Gaps:       "No liability cap\nNo governing law",
		}
		f.analyses[documentID] = review
	}
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return review, err
}

// fakeExtractor returns canned text keyed by file name.
type fakeExtractor struct {
	texts map[string]string
}

func (e *fakeExtractor) Extract(ctx context.Context, file ingest.File) (string, error) {
	text, ok := e.texts[file.Name]
	if !ok {
		if strings.HasSuffix(file.Name, ".txt") {
			return "", ingest.ErrUnsupportedType
		}
		return "", fmt.Errorf("%w: broken xref", ingest.ErrExtraction)
	}
	return text, nil
}
