package workspace

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/listing"
)

// ReviewsPage lists past reviews with their document names.
type ReviewsPage struct {
	Search string
	Page   int

	api    ReviewAPI
	logger *slog.Logger

	reviews   []models.Review
	documents map[string]models.Document
}

// NewReviewsPage creates an empty reviews page.
func NewReviewsPage(api ReviewAPI, logger *slog.Logger) *ReviewsPage {
	return &ReviewsPage{Page: 1, api: api, logger: logger}
}

// Load fetches reviews and documents in parallel.
func (p *ReviewsPage) Load(ctx context.Context) error {
	var (
		reviews []models.Review
		docs    []models.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviews, err = p.api.ListReviews(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = p.api.ListDocuments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Warn("failed to load reviews", "error", err)
		return networkError("Failed to load reviews.", err)
	}

	p.reviews = reviews
	p.documents = make(map[string]models.Document, len(docs))
	for _, d := range docs {
		p.documents[d.ID] = d
	}
	return nil
}

// Document returns the document a review belongs to, if it still exists.
func (p *ReviewsPage) Document(id string) (models.Document, bool) {
	d, ok := p.documents[id]
	return d, ok
}

// DocumentName returns the name of a document, or "" if it is gone.
func (p *ReviewsPage) DocumentName(id string) string {
	return p.documents[id].Name
}

// SetSearch changes the search term and goes back to the first page.
func (p *ReviewsPage) SetSearch(term string) {
	p.Search = term
	p.Page = 1
}

// View returns the current page of reviews matching the search term
// against document name and findings.
func (p *ReviewsPage) View() listing.Page[models.Review] {
	term := p.Search
	if blank(term) {
		term = ""
	}
	return listing.View(p.reviews, term, p.Page, config.DefaultPageSize, listing.ReviewKey(p.DocumentName))
}
