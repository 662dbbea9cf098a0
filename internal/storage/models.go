/*
Package storage provides data models for the feedback store.

These models represent problems, solutions, and feedback events collected
from users of the code generation assistant, plus the query analytics
records used by the history tracker.
*/
package storage

import "time"

// Difficulty levels recognized in problem features.
const (
	DifficultyEasy    = "easy"
	DifficultyMedium  = "medium"
	DifficultyHard    = "hard"
	DifficultyUnknown = "unknown"
)

// FeatureSet is a structured summary of a programming problem, produced by
// the language model. The store treats it as opaque data except for
// similarity scoring.
type FeatureSet struct {
	// ProblemType is the broad category (e.g. "array", "string", "graph").
	ProblemType string `json:"problem_type"`

	// Difficulty is one of easy, medium, hard, unknown.
	Difficulty string `json:"difficulty"`

	// DataStructures lists data structures likely involved.
	DataStructures []string `json:"data_structures"`

	// Algorithms lists algorithms likely applicable.
	Algorithms []string `json:"algorithms"`
}

// DefaultFeatures is what feature extraction degrades to when the model
// output cannot be parsed.
func DefaultFeatures() FeatureSet {
	return FeatureSet{
		ProblemType:    "unknown",
		Difficulty:     DifficultyMedium,
		DataStructures: []string{},
		Algorithms:     []string{},
	}
}

// Problem is a problem statement, content-addressed by the hash of its text.
// Immutable once created.
type Problem struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Features  FeatureSet `json:"features"`
	CreatedAt time.Time  `json:"created_at"`
}

// Solution is a generated solution for a problem, content-addressed by the
// hash of problem id + code. One problem may have many solutions.
type Solution struct {
	ID        string    `json:"id"`
	ProblemID string    `json:"problem_id"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	Reasoning string    `json:"reasoning"`
	CreatedAt time.Time `json:"created_at"`
}

// Feedback is a single user verdict on a solution. Append-only, never
// mutated or deleted.
type Feedback struct {
	ID         string    `json:"id"`
	SolutionID string    `json:"solution_id"`
	IsPositive bool      `json:"is_positive"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats summarizes the feedback store contents.
type Stats struct {
	TotalProblems    int     `json:"total_problems"`
	TotalSolutions   int     `json:"total_solutions"`
	TotalFeedback    int     `json:"total_feedback"`
	PositiveFeedback int     `json:"positive_feedback"`
	NegativeFeedback int     `json:"negative_feedback"`
	PositiveRate     float64 `json:"positive_rate"`
}

// QueryRecord represents one retrieval or solve request for analytics.
type QueryRecord struct {
	// ID is a unique identifier for this query (UUID).
	ID string `json:"id"`

	// Kind is the operation: "solve", "search", or "retrieve".
	Kind string `json:"kind"`

	// QueryHash is the SHA256 hash of the query text for privacy.
	QueryHash string `json:"query_hash"`

	// Timestamp is when the query was made.
	Timestamp time.Time `json:"timestamp"`

	// ResultCount is the number of results returned.
	ResultCount int `json:"result_count"`

	// DurationMs is how long the operation took, in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}
