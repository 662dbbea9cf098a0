package similarity

import (
	"testing"

	"github.com/vuhm/codecoach/internal/storage"
)

// mockSource is an in-memory ProblemSource for ranking tests.
type mockSource struct {
	problems map[string]*storage.Problem
}

func newMockSource() *mockSource {
	return &mockSource{problems: make(map[string]*storage.Problem)}
}

func (m *mockSource) add(id string, f storage.FeatureSet) {
	m.problems[id] = &storage.Problem{ID: id, Text: "problem " + id, Features: f}
}

func (m *mockSource) ProblemFeatures() map[string]storage.FeatureSet {
	out := make(map[string]storage.FeatureSet, len(m.problems))
	for id, p := range m.problems {
		out[id] = p.Features
	}
	return out
}

func (m *mockSource) GetProblem(id string) (*storage.Problem, error) {
	p, ok := m.problems[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

func TestMostSimilarOrdering(t *testing.T) {
	source := newMockSource()
	source.add("exact", features("array", "medium", []string{"hash table"}, []string{"two pointer"}))
	source.add("close", features("array", "medium", nil, nil))
	source.add("far", features("graph", "hard", []string{"tree"}, []string{"dfs"}))

	query := features("array", "medium", []string{"hash table"}, []string{"two pointer"})

	results, err := MostSimilar(source, query, 3)
	if err != nil {
		t.Fatalf("MostSimilar failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Problem.ID != "exact" {
		t.Errorf("expected exact match first, got %s", results[0].Problem.ID)
	}
	if results[2].Problem.ID != "far" {
		t.Errorf("expected far match last, got %s", results[2].Problem.ID)
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestMostSimilarLimit(t *testing.T) {
	source := newMockSource()
	for _, id := range []string{"a", "b", "c", "d"} {
		source.add(id, features("array", "easy", nil, nil))
	}

	results, err := MostSimilar(source, features("array", "easy", nil, nil), 2)
	if err != nil {
		t.Fatalf("MostSimilar failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestMostSimilarEmptyStore(t *testing.T) {
	results, err := MostSimilar(newMockSource(), features("array", "easy", nil, nil), 5)
	if err != nil {
		t.Fatalf("MostSimilar failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results from empty store, got %d", len(results))
	}
}
