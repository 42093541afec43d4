package workspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/listing"
)

func playbookID(p models.Playbook) string { return p.ID }

// PlaybooksPage is the playbooks screen.
type PlaybooksPage struct {
	Form   UploadForm
	Search string
	Page   int

	api       PlaybookAPI
	extractor Extractor
	logger    *slog.Logger

	entries []Entry[models.Playbook]
}

// NewPlaybooksPage creates an empty playbooks page.
func NewPlaybooksPage(api PlaybookAPI, extractor Extractor, logger *slog.Logger) *PlaybooksPage {
	return &PlaybooksPage{
		Page:      1,
		api:       api,
		extractor: extractor,
		logger:    logger,
	}
}

// Load replaces the local list with the server's.
func (p *PlaybooksPage) Load(ctx context.Context) error {
	playbooks, err := p.api.ListPlaybooks(ctx)
	if err != nil {
		p.logger.Warn("failed to load playbooks", "error", err)
		return networkError("Failed to load playbooks", err)
	}
	p.entries = confirmed(playbooks)
	return nil
}

// Refresh refetches playbooks and reconciles them with the local list.
func (p *PlaybooksPage) Refresh(ctx context.Context) error {
	playbooks, err := p.api.ListPlaybooks(ctx)
	if err != nil {
		p.logger.Warn("failed to refresh playbooks", "error", err)
		return networkError("Failed to load playbooks", err)
	}
	p.entries = reconcile(p.entries, playbooks, playbookID)
	return nil
}

// SelectFile extracts a chosen file into the form. A name already typed
// into the form is kept.
func (p *PlaybooksPage) SelectFile(ctx context.Context, file ingest.File) error {
	name := p.Form.Name
	if err := p.Form.loadFile(ctx, p.extractor, file, p.logger); err != nil {
		return err
	}
	if !blank(name) {
		p.Form.Name = name
	}
	return nil
}

// Submit creates the playbook described by the form and appends it.
// Names are unique case-insensitively; a clash with the local list is
// rejected before any request is made.
func (p *PlaybooksPage) Submit(ctx context.Context) error {
	if blank(p.Form.Name) || blank(p.Form.Content) {
		return validationError("Playbook name and content are required")
	}
	if p.nameTaken(p.Form.Name, "") {
		return validationError("A playbook with this name already exists")
	}

	playbook, err := p.api.CreatePlaybook(ctx, &services.CreatePlaybookRequest{
		Name:    p.Form.Name,
		Content: p.Form.Content,
	})
	if err != nil {
		p.logger.Warn("playbook upload failed", "name", p.Form.Name, "error", err)
		return networkError("Upload failed: "+err.Error(), err)
	}
	if playbook == nil || playbook.ID == "" {
		return networkError("Upload failed: Invalid response from server", nil)
	}

	p.entries = append(p.entries, Entry[models.Playbook]{Item: *playbook, State: Pending})
	p.Form.Clear()

	p.logger.Info("playbook uploaded", "id", playbook.ID, "name", playbook.Name)
	return nil
}

func (p *PlaybooksPage) nameTaken(name, exceptID string) bool {
	for _, pb := range items(p.entries) {
		if pb.ID != exceptID && strings.EqualFold(pb.Name, name) {
			return true
		}
	}
	return false
}

// Update replaces a playbook's name and content.
func (p *PlaybooksPage) Update(ctx context.Context, id, name, content string) error {
	i := p.index(id)
	if i < 0 {
		return noSuchRecord("playbook", id)
	}
	if blank(name) || blank(content) {
		return validationError("Playbook name and content are required")
	}
	if p.nameTaken(name, id) {
		return validationError("A playbook with this name already exists")
	}

	playbook, err := p.api.UpdatePlaybook(ctx, id, &services.UpdatePlaybookRequest{Name: name, Content: content})
	if err != nil {
		p.logger.Warn("playbook update failed", "id", id, "error", err)
		return networkError("Update failed", err)
	}

	p.entries[i] = Entry[models.Playbook]{Item: *playbook, State: Confirmed}
	return nil
}

// Delete removes a playbook on the server, then locally.
func (p *PlaybooksPage) Delete(ctx context.Context, id string) error {
	if err := p.api.DeletePlaybook(ctx, id); err != nil {
		p.logger.Warn("playbook delete failed", "id", id, "error", err)
		return networkError("Failed to delete playbook", err)
	}
	p.entries, _ = removeByID(p.entries, id, playbookID)
	return nil
}

// Dismiss drops a Failed record from the list.
func (p *PlaybooksPage) Dismiss(id string) error {
	if i := p.index(id); i >= 0 && p.entries[i].State == Failed {
		p.entries, _ = removeByID(p.entries, id, playbookID)
		return nil
	}
	return noSuchRecord("failed playbook", id)
}

// Download writes a playbook's content as plain text and returns the file
// name to save it under.
func (p *PlaybooksPage) Download(id string, w io.Writer) (string, error) {
	i := p.index(id)
	if i < 0 {
		return "", noSuchRecord("playbook", id)
	}
	playbook := p.entries[i].Item

	if _, err := io.WriteString(w, playbook.Content); err != nil {
		return "", fmt.Errorf("write playbook %s: %w", id, err)
	}

	filename := playbook.Name
	if filename == "" {
		filename = "playbook"
	}
	return filename + ".txt", nil
}

func (p *PlaybooksPage) index(id string) int {
	for i, e := range p.entries {
		if e.Item.ID == id {
			return i
		}
	}
	return -1
}

// SetSearch changes the search term and goes back to the first page.
func (p *PlaybooksPage) SetSearch(term string) {
	p.Search = term
	p.Page = 1
}

// Entries returns the whole local list.
func (p *PlaybooksPage) Entries() []Entry[models.Playbook] {
	return p.entries
}

// View returns the current page of the filtered list.
func (p *PlaybooksPage) View() listing.Page[Entry[models.Playbook]] {
	return listing.View(p.entries, p.Search, p.Page, config.DefaultPageSize, func(e Entry[models.Playbook]) string {
		return listing.PlaybookKey(e.Item)
	})
}
