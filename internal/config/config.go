/*
Package config handles loading, saving, and validating codecoach
configuration.

Configuration is stored in ~/.codecoach.json:

	{
	  "ollama": {
	    "baseUrl": "http://localhost:11434",
	    "chatModel": "deepseek-coder",
	    "embedModel": "all-minilm"
	  },
	  "dataDir": "~/.codecoach",
	  "retrieval": {
	    "dimension": 384,
	    "topK": 5,
	    "semanticWeight": 0.7,
	    "keywordWeight": 0.3
	  },
	  "analytics": {
	    "enabled": true
	  }
	}
*/
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	// Ollama configures the model endpoint.
	Ollama OllamaSettings `json:"ollama"`

	// DataDir is where the feedback database, knowledge catalog, and index
	// files live. Defaults to ~/.codecoach.
	DataDir string `json:"dataDir,omitempty"`

	// Retrieval configures the knowledge index and search fusion.
	Retrieval RetrievalSettings `json:"retrieval"`

	// Analytics configures background query tracking.
	Analytics AnalyticsSettings `json:"analytics"`
}

// OllamaSettings configures the Ollama endpoint and models.
type OllamaSettings struct {
	BaseURL    string `json:"baseUrl"`
	ChatModel  string `json:"chatModel"`
	EmbedModel string `json:"embedModel"`
}

// RetrievalSettings configures the knowledge index and hybrid search.
type RetrievalSettings struct {
	// Dimension is the embedding vector dimension.
	Dimension int `json:"dimension"`

	// TopK is how many knowledge entries enrich each solve.
	TopK int `json:"topK"`

	// SemanticWeight and KeywordWeight control hybrid fusion. They must
	// sum to 1.0.
	SemanticWeight float64 `json:"semanticWeight"`
	KeywordWeight  float64 `json:"keywordWeight"`
}

// AnalyticsSettings configures query history tracking.
type AnalyticsSettings struct {
	Enabled bool `json:"enabled"`
}

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	return &Config{
		Ollama: OllamaSettings{
			BaseURL:    "http://localhost:11434",
			ChatModel:  "deepseek-coder",
			EmbedModel: "all-minilm",
		},
		Retrieval: RetrievalSettings{
			Dimension:      384,
			TopK:           5,
			SemanticWeight: 0.7,
			KeywordWeight:  0.3,
		},
		Analytics: AnalyticsSettings{Enabled: true},
	}
}

// DefaultConfigPath returns the path to ~/.codecoach.json.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".codecoach.json"), nil
}

// DefaultDataDir returns the path to ~/.codecoach.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".codecoach"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "Run 'codecoach serve' or 'codecoach solve' once to create it with defaults",
			}
		}
		return nil, fmt.Errorf("failed to access config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path: path,
				Op:   "read",
				Fix:  fmt.Sprintf("Run: chmod 644 %s", path),
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("JSON parse error: %v", err),
			Hint:    "Fix the JSON or delete the file to regenerate defaults",
		}
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: err.Error(),
			Hint:    "Correct the value or delete the file to regenerate defaults",
		}
	}

	return &cfg, nil
}

// LoadOrCreate loads the config, writing defaults if the file is missing.
func LoadOrCreate(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err == nil {
		return cfg, nil
	}

	var notFound *ConfigNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	cfg = NewConfig()
	if saveErr := Save(cfg, path); saveErr != nil {
		return nil, saveErr
	}
	return cfg, nil
}

// Save writes the configuration to the specified path.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		if os.IsPermission(err) {
			return &PermissionError{
				Path: path,
				Op:   "write",
				Fix:  fmt.Sprintf("Run: chmod 644 %s", path),
			}
		}
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued fields so partial configs keep working.
func applyDefaults(cfg *Config) {
	defaults := NewConfig()

	if cfg.Ollama.BaseURL == "" {
		cfg.Ollama.BaseURL = defaults.Ollama.BaseURL
	}
	if cfg.Ollama.ChatModel == "" {
		cfg.Ollama.ChatModel = defaults.Ollama.ChatModel
	}
	if cfg.Ollama.EmbedModel == "" {
		cfg.Ollama.EmbedModel = defaults.Ollama.EmbedModel
	}
	if cfg.Retrieval.Dimension == 0 {
		cfg.Retrieval.Dimension = defaults.Retrieval.Dimension
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = defaults.Retrieval.TopK
	}
	if cfg.Retrieval.SemanticWeight == 0 && cfg.Retrieval.KeywordWeight == 0 {
		cfg.Retrieval.SemanticWeight = defaults.Retrieval.SemanticWeight
		cfg.Retrieval.KeywordWeight = defaults.Retrieval.KeywordWeight
	}
}
