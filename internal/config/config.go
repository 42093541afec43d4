package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// LLM Configuration
	LLMProvider      string
	LLMModel         string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	// Client configuration
	APIBaseURL string // Empty means client.DefaultBaseURL (the local server)
	HomeDir    string // Session + log directory for the CLI
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	provider := getEnv("LLM_PROVIDER", "lorem")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		// LLM Configuration
		LLMProvider:      provider,
		LLMModel:         getEnv("LLM_MODEL", getDefaultModel(provider)),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		// REDLINER_API_URL wins over the web UI's variable name
		APIBaseURL: getEnv("REDLINER_API_URL", getEnv("NEXT_PUBLIC_API_URL", "")),
		HomeDir:    getEnv("REDLINER_HOME", defaultHomeDir()),
	}
}

// getDefaultModel returns the model used when LLM_MODEL is unset
func getDefaultModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-haiku-4-5-20251001"
	case "openrouter":
		return "meta-llama/llama-3.3-70b-instruct"
	default:
		return "lorem-fast"
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".redliner"
	}
	return filepath.Join(home, ".redliner")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
