package analysis

import (
	"context"
	"fmt"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"
	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"
	"github.com/haowjy/meridian-llm-go/providers/openrouter"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
)

// Completer turns a prompt into model output text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderCompleter sends single-message requests to a meridian-llm-go provider.
type ProviderCompleter struct {
	provider llmprovider.Provider
	model    string
}

// NewProviderCompleter wraps provider for the given model.
func NewProviderCompleter(provider llmprovider.Provider, model string) *ProviderCompleter {
	return &ProviderCompleter{provider: provider, model: model}
}

// Name returns the provider name for logging.
func (c *ProviderCompleter) Name() string {
	return c.provider.Name().String()
}

// Complete sends prompt as one user message and returns the text blocks of the reply.
func (c *ProviderCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.provider.GenerateResponse(ctx, &llmprovider.GenerateRequest{
		Model: c.model,
		Messages: []llmprovider.Message{
			{
				Role:   "user",
				Blocks: []*llmprovider.Block{{BlockType: "text", TextContent: &prompt}},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// responseText concatenates the text blocks of a response.
func responseText(resp *llmprovider.GenerateResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, block := range resp.Blocks {
		if block.BlockType != "text" || block.TextContent == nil {
			continue
		}
		sb.WriteString(*block.TextContent)
	}
	return sb.String()
}

// NewProvider returns the configured LLM provider.
//
// Supported providers:
//   - "anthropic" - Claude models via Anthropic API
//   - "openrouter" - hosted open models via OpenRouter
//   - "lorem" - mock provider for local runs (no API key required)
func NewProvider(cfg *config.Config) (llmprovider.Provider, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		provider, err := anthropic.NewProvider(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		return provider, nil

	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable not set")
		}
		provider, err := openrouter.NewProvider(cfg.OpenRouterAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenRouter provider: %w", err)
		}
		return provider, nil

	case "lorem", "":
		return lorem.NewProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.LLMProvider)
	}
}
