package similarity

import (
	"testing"

	"github.com/vuhm/codecoach/internal/storage"
)

func features(problemType, difficulty string, ds, algos []string) storage.FeatureSet {
	return storage.FeatureSet{
		ProblemType:    problemType,
		Difficulty:     difficulty,
		DataStructures: ds,
		Algorithms:     algos,
	}
}

func TestScoreComponents(t *testing.T) {
	tests := []struct {
		name string
		a    storage.FeatureSet
		b    storage.FeatureSet
		want float64
	}{
		{
			name: "no overlap",
			a:    features("array", "easy", []string{"heap"}, []string{"greedy"}),
			b:    features("graph", "hard", []string{"tree"}, []string{"dfs"}),
			want: 0.0,
		},
		{
			name: "problem type only",
			a:    features("array", "easy", nil, nil),
			b:    features("array", "hard", nil, nil),
			want: 3.0,
		},
		{
			name: "difficulty only",
			a:    features("array", "easy", nil, nil),
			b:    features("string", "easy", nil, nil),
			want: 1.0,
		},
		{
			name: "shared data structure",
			a:    features("a", "x", []string{"heap"}, nil),
			b:    features("b", "y", []string{"heap"}, nil),
			want: 2.0,
		},
		{
			name: "shared algorithm",
			a:    features("a", "x", nil, []string{"binary search"}),
			b:    features("b", "y", nil, []string{"binary search"}),
			want: 2.0,
		},
		{
			name: "everything matches",
			a:    features("array", "medium", []string{"hash table", "heap"}, []string{"two pointer"}),
			b:    features("array", "medium", []string{"hash table", "heap"}, []string{"two pointer"}),
			want: 3.0 + 1.0 + 2.0*2 + 2.0*1,
		},
		{
			name: "case sensitive problem type",
			a:    features("Array", "easy", nil, nil),
			b:    features("array", "hard", nil, nil),
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScoreSymmetry(t *testing.T) {
	a := features("array", "medium", []string{"hash table"}, []string{"two pointer", "greedy"})
	b := features("array", "hard", []string{"hash table", "heap"}, []string{"greedy"})

	if Score(a, b) != Score(b, a) {
		t.Errorf("Score is not symmetric: %f vs %f", Score(a, b), Score(b, a))
	}
}

func TestScoreMonotonicity(t *testing.T) {
	a := features("array", "medium", []string{"hash table"}, nil)
	b := features("array", "medium", []string{"hash table"}, nil)

	base := Score(a, b)

	// Adding one new shared data structure increases the score by exactly 2.
	a.DataStructures = append(a.DataStructures, "heap")
	b.DataStructures = append(b.DataStructures, "heap")

	if got := Score(a, b); got != base+2.0 {
		t.Errorf("expected score %f after added overlap, got %f", base+2.0, got)
	}
}

func TestScoreEmptySetsContributeNothing(t *testing.T) {
	// Both sides empty counts as no overlap, not as equality.
	a := features("a", "x", []string{}, []string{})
	b := features("b", "y", []string{}, []string{})

	if got := Score(a, b); got != 0.0 {
		t.Errorf("expected 0 for empty-vs-empty sets, got %f", got)
	}

	// One side empty also contributes nothing.
	b.DataStructures = []string{"heap"}
	if got := Score(a, b); got != 0.0 {
		t.Errorf("expected 0 for empty-vs-nonempty sets, got %f", got)
	}
}

func TestScoreDuplicateValuesCountOnce(t *testing.T) {
	a := features("a", "x", []string{"heap", "heap"}, nil)
	b := features("b", "y", []string{"heap", "heap"}, nil)

	if got := Score(a, b); got != 2.0 {
		t.Errorf("expected duplicates to count once, got %f", got)
	}
}
