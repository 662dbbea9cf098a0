/*
Package retrieval implements nearest-neighbor and keyword lookup of
knowledge entries.

Semantic retrieval uses a flat L2 index over entry embeddings, persisted to
disk as a matched pair of files: the vector index and the parallel entry
list. The pair shares positional correspondence (vector i belongs to entry
i) and must never be loaded independently; a mismatch is an integrity
error and forces a rebuild. Keyword retrieval uses a Bleve BM25 index over
the same entries, and the two can be fused into hybrid results.
*/
package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/vuhm/codecoach/internal/knowledge"
)

// DefaultDimension is the embedding width assumed when an empty index must
// be constructed without ever seeing a vector (all-MiniLM-class models).
const DefaultDimension = 384

// ErrIndexMismatch reports a positional mismatch between the vector index
// and the entry list. It is an integrity error, not a retrieval miss.
var ErrIndexMismatch = errors.New("vector index and entry list do not match")

// Embedder turns texts into fixed-dimension vectors. Build-time and
// query-time embeddings must come from the same embedder or results
// silently degrade.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Result is one retrieved knowledge entry with its relevance score.
type Result struct {
	Entry knowledge.Entry `json:"entry"`

	// Score is 1/(1+distance) for semantic hits: bounded in (0, 1], and
	// exactly 1.0 only at zero distance.
	Score float64 `json:"score"`
}

// Retriever serves nearest-neighbor knowledge lookups.
//
// Lifecycle: construct, then LoadOrBuild once; afterwards Retrieve is safe
// for concurrent use. Rebuilds are exclusive: concurrent queries observe
// the prior snapshot or block, never a half-written index.
type Retriever struct {
	mu        sync.RWMutex
	embedder  Embedder
	index     *FlatIndex
	entries   []knowledge.Entry
	dimension int

	indexPath   string
	entriesPath string
}

// NewRetriever creates a retriever persisting its index pair under dir.
// dimension is the embedding width assumed until vectors are seen; values
// below 1 fall back to DefaultDimension.
func NewRetriever(embedder Embedder, dir string, dimension int) *Retriever {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Retriever{
		embedder:    embedder,
		dimension:   dimension,
		indexPath:   filepath.Join(dir, "knowledge_index.json"),
		entriesPath: filepath.Join(dir, "knowledge_entries.json"),
	}
}

// LoadOrBuild loads an existing index pair, or builds one from the catalog
// when no valid pair exists. A failed build leaves the retriever in a
// ready-empty state (correct dimensionality, zero entries) instead of
// returning an error, so the retrieval path never fails outright.
func (r *Retriever) LoadOrBuild(ctx context.Context, catalog *knowledge.Catalog) error {
	err := r.load()
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load knowledge index, rebuilding: %v", err)
	}

	return r.Rebuild(ctx, catalog)
}

// load reads the persisted pair and verifies positional integrity.
func (r *Retriever) load() error {
	index, err := LoadFlatIndex(r.indexPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(r.entriesPath)
	if err != nil {
		return fmt.Errorf("failed to read entry list: %w", err)
	}

	var entries []knowledge.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse entry list: %w", err)
	}

	if index.Len() != len(entries) {
		return fmt.Errorf("%w: %d vectors, %d entries", ErrIndexMismatch, index.Len(), len(entries))
	}

	r.mu.Lock()
	r.index = index
	r.entries = entries
	if index.Dimension > 0 {
		r.dimension = index.Dimension
	}
	r.mu.Unlock()

	return nil
}

// Rebuild recomputes embeddings for every catalog entry and persists the
// index pair. Embedding failure falls back to an empty index of the
// expected dimensionality.
func (r *Retriever) Rebuild(ctx context.Context, catalog *knowledge.Catalog) error {
	entries := catalog.Items("")

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.IndexText()
	}

	index := NewFlatIndex(r.dimension)

	if len(entries) > 0 {
		vectors, err := r.embedder.Embed(ctx, texts)
		if err != nil || len(vectors) != len(entries) {
			if err == nil {
				err = fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(entries))
			}
			log.Printf("Warning: failed to build knowledge index, serving empty results: %v", err)
			r.mu.Lock()
			r.index = NewFlatIndex(r.dimension)
			r.entries = nil
			r.mu.Unlock()
			return nil
		}

		index = NewFlatIndex(len(vectors[0]))
		if err := index.Add(vectors...); err != nil {
			return fmt.Errorf("failed to index vectors: %w", err)
		}
	}

	if err := r.persist(index, entries); err != nil {
		return err
	}

	r.mu.Lock()
	r.index = index
	r.entries = entries
	r.dimension = index.Dimension
	r.mu.Unlock()

	return nil
}

// persist writes the vector index and entry list as a matched pair.
func (r *Retriever) persist(index *FlatIndex, entries []knowledge.Entry) error {
	if err := os.MkdirAll(filepath.Dir(r.indexPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	if err := index.Save(r.indexPath); err != nil {
		return err
	}

	if entries == nil {
		entries = []knowledge.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entry list: %w", err)
	}
	if err := os.WriteFile(r.entriesPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write entry list: %w", err)
	}

	return nil
}

// Count returns the number of indexed entries.
func (r *Retriever) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.index == nil {
		return 0
	}
	return r.index.Len()
}

// Retrieve returns up to k knowledge entries nearest to the query text,
// ordered by ascending distance (descending score). An empty index yields
// empty results; an embedding failure degrades to empty results with a
// warning rather than an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.index == nil || r.index.Len() == 0 {
		return nil, nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) != 1 {
		log.Printf("Warning: failed to embed query, returning no results: %v", err)
		return nil, nil
	}

	if len(vectors[0]) != r.index.Dimension {
		return nil, fmt.Errorf("%w: query embedding dimension %d, index dimension %d",
			ErrIndexMismatch, len(vectors[0]), r.index.Dimension)
	}

	neighbors, err := r.index.Search(vectors[0], k)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Position >= len(r.entries) {
			return nil, fmt.Errorf("%w: neighbor position %d, %d entries", ErrIndexMismatch, n.Position, len(r.entries))
		}
		results = append(results, Result{
			Entry: r.entries[n.Position],
			Score: 1.0 / (1.0 + n.Distance),
		})
	}

	return results, nil
}

// Entries returns the indexed entry list in positional order.
func (r *Retriever) Entries() []knowledge.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]knowledge.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
