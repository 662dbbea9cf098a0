package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/vuhm/codecoach/internal/storage"
)

// OllamaConfig holds the connection settings for an Ollama endpoint.
type OllamaConfig struct {
	// BaseURL is the endpoint root, e.g. http://localhost:11434.
	BaseURL string

	// ChatModel is the generation model, e.g. deepseek-coder.
	ChatModel string

	// EmbedModel is the embedding model, e.g. all-minilm.
	EmbedModel string
}

// OllamaClient implements Model and Embedder against the Ollama REST API.
type OllamaClient struct {
	config     OllamaConfig
	httpClient *http.Client
}

// NewOllamaClient creates an Ollama-backed client.
func NewOllamaClient(config OllamaConfig) *OllamaClient {
	return &OllamaClient{
		config: config,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Generate produces text for the prompt via /api/chat.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": c.config.ChatModel,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
	}

	body, err := c.post(ctx, "/api/chat", payload)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	var resp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ollama chat decode: %w", err)
	}

	if resp.Message.Content == "" {
		return "", fmt.Errorf("ollama chat: empty response")
	}

	return resp.Message.Content, nil
}

// Embed generates embeddings for multiple texts in one call via /api/embed.
func (c *OllamaClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	payload := map[string]interface{}{
		"model": c.config.EmbedModel,
		"input": texts,
	}

	body, err := c.post(ctx, "/api/embed", payload)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}

	var resp struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama embed decode: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama embed: got %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}

	return resp.Embeddings, nil
}

// featurePrompt asks the model for structured problem features.
const featurePrompt = `Analyze the following programming problem and extract its key features.

%s

Return a JSON object with exactly these fields:
1. problem_type: the problem category (e.g. array, string, tree, graph)
2. difficulty: one of easy, medium, hard
3. data_structures: array of data structures likely involved
4. algorithms: array of algorithms likely applicable

Return only the JSON object, no other text.`

// ExtractFeatures analyzes a problem statement. Upstream or parse failures
// degrade to the default feature set.
func (c *OllamaClient) ExtractFeatures(ctx context.Context, text string) storage.FeatureSet {
	response, err := c.Generate(ctx, fmt.Sprintf(featurePrompt, text))
	if err != nil {
		log.Printf("Warning: feature extraction failed, using defaults: %v", err)
		return storage.DefaultFeatures()
	}

	return ParseFeatures(response)
}

// post sends a JSON payload and returns the response body.
func (c *OllamaClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}
