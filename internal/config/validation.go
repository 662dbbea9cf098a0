package config

import (
	"fmt"
	"math"
	"net/url"
)

// Validate checks a configuration for values that would break components
// downstream.
func Validate(cfg *Config) error {
	if cfg.Ollama.BaseURL == "" {
		return fmt.Errorf("ollama.baseUrl must not be empty")
	}
	parsed, err := url.Parse(cfg.Ollama.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("ollama.baseUrl %q is not a valid URL", cfg.Ollama.BaseURL)
	}

	if cfg.Ollama.ChatModel == "" {
		return fmt.Errorf("ollama.chatModel must not be empty")
	}
	if cfg.Ollama.EmbedModel == "" {
		return fmt.Errorf("ollama.embedModel must not be empty")
	}

	if cfg.Retrieval.Dimension <= 0 {
		return fmt.Errorf("retrieval.dimension must be positive, got %d", cfg.Retrieval.Dimension)
	}
	if cfg.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.topK must be positive, got %d", cfg.Retrieval.TopK)
	}

	if cfg.Retrieval.SemanticWeight < 0 || cfg.Retrieval.KeywordWeight < 0 {
		return fmt.Errorf("retrieval weights must be non-negative")
	}
	sum := cfg.Retrieval.SemanticWeight + cfg.Retrieval.KeywordWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("retrieval weights must sum to 1.0, got %.3f", sum)
	}

	return nil
}
