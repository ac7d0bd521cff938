// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the caller exits with an error
// before any request is served.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for both binaries.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional: conversation context store disabled when empty

	// LLM provider keys, tried in priority order (google > anthropic > openai).
	GoogleAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// Knowledge-graph mirror
	GraphSyncEnabled bool
	APIBaseURL       string
	RevalidateSecret string

	// Fixed pause between batch records, to respect provider rate limits.
	ClassifyDelay time.Duration
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "https://fractional.quest"
	}

	graphSync := true
	if v := os.Getenv("GRAPH_SYNC_ENABLED"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("GRAPH_SYNC_ENABLED: %w", err)
		}
		graphSync = parsed
	}

	delay := 2 * time.Second
	if v := os.Getenv("CLASSIFY_DELAY"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CLASSIFY_DELAY: %w", err)
		}
		delay = parsed
	}

	return &Config{
		Port:             port,
		DatabaseURL:      dbURL,
		RedisURL:         os.Getenv("REDIS_URL"),
		GoogleAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		GraphSyncEnabled: graphSync,
		APIBaseURL:       apiBase,
		RevalidateSecret: os.Getenv("REVALIDATE_SECRET"),
		ClassifyDelay:    delay,
	}, nil
}
