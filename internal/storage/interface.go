/*
Package storage implements the persistent feedback store.

Full records live in SQLite (modernc.org/sqlite, pure Go, CGo-free) under
~/.codecoach/feedback.db. A secondary in-memory index (problem metadata,
solution metadata, feedback metadata, and the problem-features map used for
similarity search) is rebuilt from the tables on open and kept in sync with
every committed write. Records are inserted transactionally before the
in-memory index is touched, so a crash mid-write leaves the prior state
intact and recovery is just reopening the store.
*/
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound is returned when a record id has no backing record.
var ErrNotFound = errors.New("record not found")

// Store defines the feedback store operations.
type Store interface {
	// AddProblem stores a problem, content-addressed by the hash of its
	// text. Adding the same text twice returns the existing id without
	// writing a duplicate record.
	AddProblem(text string, features FeatureSet) (string, error)

	// AddSolution stores a solution keyed by hash(problemID + code), with
	// the same idempotent contract as AddProblem.
	AddSolution(problemID, code, language, reasoning string) (string, error)

	// AddFeedback appends a feedback record for a solution. Never
	// deduplicated.
	AddFeedback(solutionID string, isPositive bool, comment string) (string, error)

	// GetProblem returns a problem or ErrNotFound.
	GetProblem(id string) (*Problem, error)

	// GetSolution returns a solution or ErrNotFound.
	GetSolution(id string) (*Solution, error)

	// SolutionIDsForProblem returns the ids of all solutions recorded for a
	// problem, oldest first.
	SolutionIDsForProblem(problemID string) []string

	// FeedbackForSolution returns all feedback for a solution, newest first.
	FeedbackForSolution(solutionID string) ([]Feedback, error)

	// ProblemFeatures returns a snapshot of the similarity-search index
	// (problem id -> features).
	ProblemFeatures() map[string]FeatureSet

	// Statistics summarizes store contents.
	Statistics() Stats

	// RecordQuery stores a query analytics record.
	RecordQuery(rec QueryRecord) error

	// QueryHistory returns query records since the given time, newest first.
	QueryHistory(since time.Time) ([]QueryRecord, error)

	// ClearQueryHistory deletes all query analytics records.
	ClearQueryHistory() error

	// Close closes the underlying database.
	Close() error
}

// HashText returns the hex SHA256 digest of text, used as a
// content-addressed record id and dedup key. Hash equality is treated as
// text equality; the full text is not compared.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
