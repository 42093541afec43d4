package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// Engine implements services.Analyzer with retrieval plus one LLM call.
type Engine struct {
	completer Completer
	topK      int
	maxWords  int
	logger    *slog.Logger
}

// NewEngine creates an engine that sends prompts to completer.
func NewEngine(completer Completer, logger *slog.Logger) services.Analyzer {
	return &Engine{
		completer: completer,
		topK:      config.RetrievalTopK,
		maxWords:  config.ChunkMaxWords,
		logger:    logger,
	}
}

// Analyze compares documentText against playbookText.
func (e *Engine) Analyze(ctx context.Context, playbookText, documentText string) (services.Sections, error) {
	if strings.TrimSpace(playbookText) == "" || strings.TrimSpace(documentText) == "" {
		return services.Sections{}, fmt.Errorf("%w: both playbook and document content are required", domain.ErrValidation)
	}

	chunks := SplitText(playbookText, e.maxWords)
	top := NewRetriever(chunks).TopK(documentText, e.topK)
	e.logger.Debug("playbook retrieval",
		"chunks", len(chunks),
		"selected", len(top),
	)

	text, err := e.completer.Complete(ctx, BuildPrompt(top, documentText))
	if err != nil {
		return services.Sections{}, fmt.Errorf("analysis failed: %w", err)
	}

	sections := ParseSections(text)
	if sections.Empty() {
		e.logger.Warn("no analysis results found in LLM response")
	}

	return sections, nil
}
