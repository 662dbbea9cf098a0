/*
Package learning records query analytics in the background.

Every solve, search, and retrieve operation emits a QueryEvent. Events carry
only a hash of the query text, never the text itself, and are flushed to the
query_history table in batches so the hot path never blocks on storage.
*/
package learning

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/vuhm/codecoach/internal/storage"
)

// Event kinds recorded by the tracker.
const (
	KindSolve    = "solve"
	KindSearch   = "search"
	KindRetrieve = "retrieve"
)

// QueryEvent is one tracked operation.
type QueryEvent struct {
	// ID is a unique identifier for this event.
	ID string

	// Kind is one of KindSolve, KindSearch, KindRetrieve.
	Kind string

	// QueryHash is the SHA256 hash of the query text for privacy.
	QueryHash string

	// Timestamp is when the operation ran.
	Timestamp time.Time

	// ResultCount is how many results the operation returned.
	ResultCount int

	// Duration is how long the operation took.
	Duration time.Duration
}

// NewQueryEvent creates an event for a completed operation.
func NewQueryEvent(kind, query string, resultCount int, duration time.Duration) QueryEvent {
	return QueryEvent{
		ID:          uuid.New().String(),
		Kind:        kind,
		QueryHash:   hashQuery(query),
		Timestamp:   time.Now(),
		ResultCount: resultCount,
		Duration:    duration,
	}
}

// ToRecord converts the event to its storage model.
func (e QueryEvent) ToRecord() storage.QueryRecord {
	return storage.QueryRecord{
		ID:          e.ID,
		Kind:        e.Kind,
		QueryHash:   e.QueryHash,
		Timestamp:   e.Timestamp,
		ResultCount: e.ResultCount,
		DurationMs:  e.Duration.Milliseconds(),
	}
}

// hashQuery hashes the query text so history never stores raw queries.
func hashQuery(query string) string {
	if query == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}
