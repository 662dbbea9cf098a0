/*
Package similarity scores the relatedness of two problem feature sets.

The score is a fixed-weight additive heuristic rather than a learned model,
so rankings are reproducible and auditable.
*/
package similarity

import (
	"sort"

	"github.com/vuhm/codecoach/internal/storage"
)

const (
	// problemTypeWeight is added when the problem types match exactly.
	problemTypeWeight = 3.0

	// difficultyWeight is added when the difficulties match.
	difficultyWeight = 1.0

	// overlapWeight is added per shared data structure and per shared
	// algorithm.
	overlapWeight = 2.0
)

// Score computes the similarity between two feature sets.
//
// Matching problem type contributes 3.0, matching difficulty 1.0, and each
// shared data structure or algorithm 2.0. Set overlap only counts when both
// sides are non-empty. The result is symmetric, non-negative, and has no
// upper bound.
func Score(a, b storage.FeatureSet) float64 {
	score := 0.0

	if a.ProblemType == b.ProblemType {
		score += problemTypeWeight
	}

	if a.Difficulty == b.Difficulty {
		score += difficultyWeight
	}

	score += overlapWeight * float64(intersectionSize(a.DataStructures, b.DataStructures))
	score += overlapWeight * float64(intersectionSize(a.Algorithms, b.Algorithms))

	return score
}

// intersectionSize counts distinct values present in both slices. Empty
// input on either side contributes nothing, even when both are empty.
func intersectionSize(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}

	count := 0
	seen := make(map[string]bool, len(b))
	for _, v := range b {
		if set[v] && !seen[v] {
			count++
			seen[v] = true
		}
	}
	return count
}

// ScoredProblem pairs a problem with its similarity score.
type ScoredProblem struct {
	Problem *storage.Problem
	Score   float64
}

// ProblemSource is the slice of the feedback store that ranking needs.
type ProblemSource interface {
	ProblemFeatures() map[string]storage.FeatureSet
	GetProblem(id string) (*storage.Problem, error)
}

// MostSimilar ranks all known problems against the given features and
// returns the top limit, scored and sorted descending. Ties keep iteration
// order, which is not deterministic across runs.
func MostSimilar(store ProblemSource, features storage.FeatureSet, limit int) ([]ScoredProblem, error) {
	type candidate struct {
		id    string
		score float64
	}

	indexed := store.ProblemFeatures()
	candidates := make([]candidate, 0, len(indexed))
	for id, indexedFeatures := range indexed {
		candidates = append(candidates, candidate{id: id, score: Score(features, indexedFeatures)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]ScoredProblem, 0, len(candidates))
	for _, c := range candidates {
		problem, err := store.GetProblem(c.id)
		if err != nil {
			return nil, err
		}
		results = append(results, ScoredProblem{Problem: problem, Score: c.score})
	}

	return results, nil
}
