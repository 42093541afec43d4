package workspace

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

// Stats are the dashboard counters.
type Stats struct {
	Documents  int
	Processing int
	Processed  int
	Failed     int
	Playbooks  int
	Reviews    int
	Conflicts  int
	Gaps       int
	Irrelevant int
}

// ComputeStats counts documents by status and review findings by type.
func ComputeStats(docs []models.Document, playbooks []models.Playbook, reviews []models.Review) Stats {
	s := Stats{
		Documents: len(docs),
		Playbooks: len(playbooks),
		Reviews:   len(reviews),
	}
	for _, d := range docs {
		switch d.Status {
		case models.DocumentStatusProcessed:
			s.Processed++
		case models.DocumentStatusFailed:
			s.Failed++
		default:
			s.Processing++
		}
	}
	for _, r := range reviews {
		for _, rl := range r.Redlines() {
			switch rl.Type {
			case models.RedlineConflict:
				s.Conflicts++
			case models.RedlineGap:
				s.Gaps++
			case models.RedlineIrrelevant:
				s.Irrelevant++
			}
		}
	}
	return s
}

// LoadStats fetches every list in parallel and computes the dashboard counters.
func LoadStats(ctx context.Context, api StatsAPI) (Stats, error) {
	var (
		docs      []models.Document
		playbooks []models.Playbook
		reviews   []models.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		docs, err = api.ListDocuments(gctx)
		return err
	})
	g.Go(func() (err error) {
		playbooks, err = api.ListPlaybooks(gctx)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = api.ListReviews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("load dashboard: %w", err)
	}

	return ComputeStats(docs, playbooks, reviews), nil
}
