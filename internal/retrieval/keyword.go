package retrieval

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/vuhm/codecoach/internal/knowledge"
)

// KeywordIndex provides BM25 keyword search over knowledge entries using an
// in-memory Bleve index.
type KeywordIndex struct {
	bleveIndex bleve.Index
	entries    map[string]knowledge.Entry
	mu         sync.RWMutex
}

// NewKeywordIndex creates an empty in-memory keyword index.
func NewKeywordIndex() (*KeywordIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &KeywordIndex{
		bleveIndex: index,
		entries:    make(map[string]knowledge.Entry),
	}, nil
}

// buildIndexMapping creates the Bleve index mapping for knowledge entries.
func buildIndexMapping() mapping.IndexMapping {
	entryMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	entryMapping.AddFieldMappingsAt("name", nameFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	entryMapping.AddFieldMappingsAt("description", descFieldMapping)

	keywordsFieldMapping := bleve.NewTextFieldMapping()
	entryMapping.AddFieldMappingsAt("keywords", keywordsFieldMapping)

	categoryFieldMapping := bleve.NewTextFieldMapping()
	entryMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", entryMapping)

	return indexMapping
}

// IndexEntries indexes the given knowledge entries, replacing any previous
// documents with the same ids.
func (k *KeywordIndex) IndexEntries(entries []knowledge.Entry) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	batch := k.bleveIndex.NewBatch()

	for _, entry := range entries {
		doc := map[string]interface{}{
			"name":        entry.Name,
			"description": entry.Description,
			"keywords":    strings.Join(entry.Keywords, " "),
			"category":    entry.Category,
		}

		if err := batch.Index(entry.ID, doc); err != nil {
			return fmt.Errorf("failed to index entry %s: %w", entry.ID, err)
		}
		k.entries[entry.ID] = entry
	}

	if err := k.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index entries: %w", err)
	}

	return nil
}

// Search performs BM25 keyword search and returns up to limit entries with
// their Bleve scores, best first.
func (k *KeywordIndex) Search(query string, limit int) ([]Result, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	searchQuery := bleve.NewMatchQuery(query)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)

	searchResults, err := k.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	results := make([]Result, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		entry, ok := k.entries[hit.ID]
		if !ok {
			continue
		}
		results = append(results, Result{Entry: entry, Score: hit.Score})
	}

	return results, nil
}

// Count returns the number of indexed entries.
func (k *KeywordIndex) Count() (uint64, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	count, err := k.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return count, nil
}

// Close closes the index and releases resources.
func (k *KeywordIndex) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.bleveIndex != nil {
		return k.bleveIndex.Close()
	}

	return nil
}
