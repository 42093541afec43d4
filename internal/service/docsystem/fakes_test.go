package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memDocuments struct {
	mu   sync.Mutex
	docs []models.Document
}

func (m *memDocuments) Create(ctx context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memDocuments) GetByID(ctx context.Context, id string) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (m *memDocuments) List(ctx context.Context) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.docs)
	slices.Reverse(out)
	return out, nil
}

func (m *memDocuments) UpdateStatus(ctx context.Context, id string, status models.DocumentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (m *memDocuments) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs = slices.Delete(m.docs, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

type memPlaybooks struct {
	mu        sync.Mutex
	playbooks []models.Playbook
}

func (m *memPlaybooks) duplicate(p *models.Playbook) error {
	for _, existing := range m.playbooks {
		if existing.ID != p.ID && strings.EqualFold(existing.Name, p.Name) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("A playbook with the name %q already exists.", p.Name),
				ResourceType: "playbook",
				ResourceID:   existing.ID,
			}
		}
	}
	return nil
}

func (m *memPlaybooks) Create(ctx context.Context, p *models.Playbook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.duplicate(p); err != nil {
		return err
	}
	m.playbooks = append(m.playbooks, *p)
	return nil
}

func (m *memPlaybooks) GetByID(ctx context.Context, id string) (*models.Playbook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.playbooks {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("playbook %s: %w", id, domain.ErrNotFound)
}

func (m *memPlaybooks) List(ctx context.Context) ([]models.Playbook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.playbooks), nil
}

func (m *memPlaybooks) Update(ctx context.Context, p *models.Playbook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.duplicate(p); err != nil {
		return err
	}
	for i := range m.playbooks {
		if m.playbooks[i].ID == p.ID {
			m.playbooks[i] = *p
			return nil
		}
	}
	return fmt.Errorf("playbook %s: %w", p.ID, domain.ErrNotFound)
}

func (m *memPlaybooks) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.playbooks {
		if m.playbooks[i].ID == id {
			m.playbooks = slices.Delete(m.playbooks, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("playbook %s: %w", id, domain.ErrNotFound)
}

type memReviews struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (m *memReviews) Create(ctx context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, *r)
	return nil
}

func (m *memReviews) GetByID(ctx context.Context, id string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
}

func (m *memReviews) GetLatestByDocument(ctx context.Context, documentID string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if m.reviews[i].DocumentID == documentID {
			r := m.reviews[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("review for document %s: %w", documentID, domain.ErrNotFound)
}

func (m *memReviews) List(ctx context.Context) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.reviews)
	slices.Reverse(out)
	return out, nil
}

func (m *memReviews) UpdateCorrections(ctx context.Context, id string, corrections *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reviews {
		if m.reviews[i].ID == id {
			m.reviews[i].Corrections = corrections
			return nil
		}
	}
	return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
}

// inlineTx runs fn without a real transaction.
type inlineTx struct{ calls int }

func (t *inlineTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	t.calls++
	return fn(ctx)
}

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, file ingest.File) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeAnalyzer struct {
	sections services.Sections
	err      error
	gotRules string
	gotDoc   string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, playbookText, documentText string) (services.Sections, error) {
	f.gotRules, f.gotDoc = playbookText, documentText
	return f.sections, f.err
}
