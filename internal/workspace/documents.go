package workspace

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/listing"
)

func documentID(d models.Document) string { return d.ID }

// DocumentsPage is the documents screen: upload form, list, search and paging.
type DocumentsPage struct {
	Form   UploadForm
	Search string
	Page   int

	api       DocumentAPI
	extractor Extractor
	logger    *slog.Logger
	now       func() time.Time

	entries   []Entry[models.Document]
	playbooks []models.Playbook
}

// NewDocumentsPage creates an empty documents page.
func NewDocumentsPage(api DocumentAPI, extractor Extractor, logger *slog.Logger) *DocumentsPage {
	return &DocumentsPage{
		Page:      1,
		api:       api,
		extractor: extractor,
		logger:    logger,
		now:       time.Now,
	}
}

// Load fetches documents and playbooks in parallel, replacing the local list.
func (p *DocumentsPage) Load(ctx context.Context) error {
	var (
		docs      []models.Document
		playbooks []models.Playbook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = p.api.ListDocuments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		playbooks, err = p.api.ListPlaybooks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Warn("failed to load documents", "error", err)
		return networkError("Failed to load documents.", err)
	}

	p.entries = confirmed(normalizeDocuments(docs, p.now()))
	p.playbooks = playbooks
	return nil
}

// Refresh refetches documents and reconciles them with the local list.
func (p *DocumentsPage) Refresh(ctx context.Context) error {
	docs, err := p.api.ListDocuments(ctx)
	if err != nil {
		p.logger.Warn("failed to refresh documents", "error", err)
		return networkError("Failed to load documents.", err)
	}

	p.entries = reconcile(p.entries, normalizeDocuments(docs, p.now()), documentID)
	return nil
}

// normalizeDocuments fills in fields older records may lack.
func normalizeDocuments(docs []models.Document, now time.Time) []models.Document {
	for i := range docs {
		if docs[i].CreatedAt.IsZero() {
			docs[i].CreatedAt = now
		}
		if docs[i].Status == "" {
			docs[i].Status = models.DocumentStatusProcessing
		}
	}
	return docs
}

// SelectFile extracts a chosen file into the form.
func (p *DocumentsPage) SelectFile(ctx context.Context, file ingest.File) error {
	return p.Form.loadFile(ctx, p.extractor, file, p.logger)
}

// Submit creates the document described by the form. On success the new
// record is prepended as Pending, the form is cleared and the caller is sent
// to the analysis screen. On failure nothing changes.
func (p *DocumentsPage) Submit(ctx context.Context) (Navigation, error) {
	if err := validation.Validate(p.Form.PlaybookID, validation.Required.Error("Please select a playbook")); err != nil {
		return Navigation{}, validationError(err.Error())
	}
	if blank(p.Form.Name) || blank(p.Form.Content) {
		return Navigation{}, validationError("Please upload a valid document")
	}

	doc, err := p.api.CreateDocument(ctx, &services.CreateDocumentRequest{
		Name:       p.Form.Name,
		Content:    p.Form.Content,
		PlaybookID: p.Form.PlaybookID,
		Status:     string(models.DocumentStatusProcessing),
	})
	if err != nil {
		p.logger.Warn("document upload failed", "name", p.Form.Name, "error", err)
		return Navigation{}, networkError("Failed to upload document. Please try again.", err)
	}
	if doc == nil || doc.ID == "" {
		return Navigation{}, networkError("Upload failed: Invalid response from server", nil)
	}

	created := *doc
	created.CreatedAt = p.now()
	created.Status = models.DocumentStatusProcessing

	p.entries = append([]Entry[models.Document]{{Item: created, State: Pending}}, p.entries...)
	p.Form.Clear()

	p.logger.Info("document uploaded", "id", created.ID, "name", created.Name)
	return AnalysisRoute(created.ID), nil
}

// Delete removes a document on the server, then locally.
func (p *DocumentsPage) Delete(ctx context.Context, id string) error {
	if err := p.api.DeleteDocument(ctx, id); err != nil {
		p.logger.Warn("document delete failed", "id", id, "error", err)
		return networkError("Failed to delete document. Please try again.", err)
	}
	p.entries, _ = removeByID(p.entries, id, documentID)
	return nil
}

// Dismiss drops a Failed record from the list.
func (p *DocumentsPage) Dismiss(id string) error {
	for _, e := range p.entries {
		if e.Item.ID == id && e.State == Failed {
			p.entries, _ = removeByID(p.entries, id, documentID)
			return nil
		}
	}
	return noSuchRecord("failed document", id)
}

// SetSearch changes the search term and goes back to the first page.
func (p *DocumentsPage) SetSearch(term string) {
	p.Search = term
	p.Page = 1
}

// Entries returns the whole local list.
func (p *DocumentsPage) Entries() []Entry[models.Document] {
	return p.entries
}

// Playbooks returns the playbooks offered in the form.
func (p *DocumentsPage) Playbooks() []models.Playbook {
	return p.playbooks
}

// View returns the current page of the filtered list.
func (p *DocumentsPage) View() listing.Page[Entry[models.Document]] {
	return listing.View(p.entries, p.Search, p.Page, config.DefaultPageSize, func(e Entry[models.Document]) string {
		return listing.DocumentKey(e.Item)
	})
}
