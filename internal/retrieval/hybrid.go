package retrieval

import (
	"context"
	"sort"
)

// FusionConfig defines weights for hybrid score fusion.
type FusionConfig struct {
	SemanticWeight float64
	KeywordWeight  float64
}

// DefaultFusionConfig provides balanced fusion (70% semantic, 30% keyword).
var DefaultFusionConfig = FusionConfig{
	SemanticWeight: 0.7,
	KeywordWeight:  0.3,
}

// Hybrid combines semantic and keyword retrieval over the same catalog.
type Hybrid struct {
	Retriever *Retriever
	Keyword   *KeywordIndex
	Config    FusionConfig
}

// NewHybrid creates a hybrid searcher with the default fusion weights.
func NewHybrid(retriever *Retriever, keyword *KeywordIndex) *Hybrid {
	return &Hybrid{Retriever: retriever, Keyword: keyword, Config: DefaultFusionConfig}
}

// Search fuses semantic and keyword results for the query. When one side
// returns nothing (empty index, embedding failure), the other side's
// results are returned as-is.
func (h *Hybrid) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	semantic, err := h.Retriever.Retrieve(ctx, query, limit*2)
	if err != nil {
		return nil, err
	}

	keyword, err := h.Keyword.Search(query, limit*2)
	if err != nil {
		// Keyword search is the optional side here; semantic results
		// still stand on their own.
		keyword = nil
	}

	if len(semantic) == 0 {
		if len(keyword) > limit {
			keyword = keyword[:limit]
		}
		return keyword, nil
	}
	if len(keyword) == 0 {
		if len(semantic) > limit {
			semantic = semantic[:limit]
		}
		return semantic, nil
	}

	fused := fuseScores(normalizeScores(semantic), normalizeScores(keyword), h.Config)

	sort.Slice(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}

	return fused, nil
}

// fuseScores combines semantic and keyword results using weighted fusion,
// keyed by entry id.
func fuseScores(semantic, keyword []Result, config FusionConfig) []Result {
	semanticMap := make(map[string]Result, len(semantic))
	for _, r := range semantic {
		semanticMap[r.Entry.ID] = r
	}
	keywordMap := make(map[string]Result, len(keyword))
	for _, r := range keyword {
		keywordMap[r.Entry.ID] = r
	}

	ids := make(map[string]bool, len(semantic)+len(keyword))
	for id := range semanticMap {
		ids[id] = true
	}
	for id := range keywordMap {
		ids[id] = true
	}

	fused := make([]Result, 0, len(ids))
	for id := range ids {
		semResult, hasSemantic := semanticMap[id]
		kwResult, hasKeyword := keywordMap[id]

		switch {
		case hasSemantic && hasKeyword:
			fused = append(fused, Result{
				Entry: semResult.Entry,
				Score: config.SemanticWeight*semResult.Score + config.KeywordWeight*kwResult.Score,
			})
		case hasSemantic:
			fused = append(fused, Result{
				Entry: semResult.Entry,
				Score: config.SemanticWeight * semResult.Score,
			})
		default:
			fused = append(fused, Result{
				Entry: kwResult.Entry,
				Score: config.KeywordWeight * kwResult.Score,
			})
		}
	}

	return fused
}

// normalizeScores min-max normalizes scores to [0, 1]. When all scores are
// equal they all become 1.0.
func normalizeScores(results []Result) []Result {
	if len(results) == 0 {
		return results
	}

	minScore := results[0].Score
	maxScore := results[0].Score
	for _, r := range results {
		if r.Score < minScore {
			minScore = r.Score
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	normalized := make([]Result, len(results))
	for i, r := range results {
		normalized[i] = r
		if maxScore == minScore {
			normalized[i].Score = 1.0
		} else {
			normalized[i].Score = (r.Score - minScore) / (maxScore - minScore)
		}
	}

	return normalized
}
