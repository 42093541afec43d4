package workspace

import (
	"context"
	"errors"
	"log/slog"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/client"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

const (
	msgAnalysisFailed   = "Analysis failed. Please try again."
	msgAnalysisNotFound = "Analysis not found."
)

// AnalysisResult is a review prepared for display.
type AnalysisResult struct {
	Review   models.Review
	Redlines []models.Redline
}

func newAnalysisResult(review *models.Review) *AnalysisResult {
	return &AnalysisResult{Review: *review, Redlines: review.Redlines()}
}

// Filter returns the redlines of one type, or all of them for "" or "all".
func (r *AnalysisResult) Filter(typ models.RedlineType) []models.Redline {
	if typ == "" || typ == "all" {
		return r.Redlines
	}
	out := []models.Redline{}
	for _, rl := range r.Redlines {
		if rl.Type == typ {
			out = append(out, rl)
		}
	}
	return out
}

// Counts returns how many redlines there are of each type.
func (r *AnalysisResult) Counts() map[models.RedlineType]int {
	counts := make(map[models.RedlineType]int, len(models.RedlineTypes))
	for _, typ := range models.RedlineTypes {
		counts[typ] = 0
	}
	for _, rl := range r.Redlines {
		counts[rl.Type]++
	}
	return counts
}

// AnalysisView loads the analysis of one document, running it on first view.
type AnalysisView struct {
	api    AnalysisAPI
	logger *slog.Logger
}

// NewAnalysisView creates an analysis view.
func NewAnalysisView(api AnalysisAPI, logger *slog.Logger) *AnalysisView {
	return &AnalysisView{api: api, logger: logger}
}

// Load returns the latest analysis of a document. If there is none yet it
// asks the backend to run one and fetches it again. Once ctx is done any
// late response is discarded and ctx's error is returned.
func (v *AnalysisView) Load(ctx context.Context, documentID string) (*AnalysisResult, error) {
	review, err := v.api.GetAnalysis(ctx, documentID)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err == nil {
		return newAnalysisResult(review), nil
	}
	if !client.IsNotFound(err) {
		v.logger.Warn("analysis lookup failed", "document_id", documentID, "error", err)
		return nil, networkError(msgAnalysisNotFound, err)
	}

	v.logger.Info("running analysis", "document_id", documentID)
	_, err = v.api.Analyze(ctx, documentID)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		v.logger.Warn("analysis failed", "document_id", documentID, "error", err)
		if client.IsNotFound(err) {
			return nil, networkError(notFoundDetail(err), err)
		}
		return nil, networkError(msgAnalysisFailed, err)
	}

	review, err = v.api.GetAnalysis(ctx, documentID)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		v.logger.Warn("analysis fetch after run failed", "document_id", documentID, "error", err)
		return nil, networkError(msgAnalysisFailed, err)
	}
	return newAnalysisResult(review), nil
}

// notFoundDetail is the server's explanation of a 404, e.g. a deleted playbook.
func notFoundDetail(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return msgAnalysisFailed
}
