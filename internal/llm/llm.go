/*
Package llm wraps the external language-model capabilities the assistant
consumes: text generation, feature extraction, and embeddings.

The core depends only on these interfaces; the Ollama client is the
shipped implementation.
*/
package llm

import (
	"context"

	"github.com/vuhm/codecoach/internal/storage"
)

// Model generates text and extracts problem features.
type Model interface {
	// Generate produces text for the prompt. Upstream failure surfaces as
	// an explicit error, never as silently empty text.
	Generate(ctx context.Context, prompt string) (string, error)

	// ExtractFeatures analyzes a problem statement. It is best-effort: on
	// any upstream or parse failure it degrades to the default feature
	// set instead of failing the caller.
	ExtractFeatures(ctx context.Context, text string) storage.FeatureSet
}

// Embedder turns texts into fixed-dimension vectors. The same embedder must
// serve both index build and query time.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
