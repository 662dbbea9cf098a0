package learning

import (
	"sync"
	"testing"
	"time"

	"github.com/vuhm/codecoach/internal/storage"
)

// mockWriter collects flushed records.
type mockWriter struct {
	mu      sync.Mutex
	records []storage.QueryRecord
}

func (m *mockWriter) RecordQuery(rec storage.QueryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockWriter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(&mockWriter{})

	if !tracker.IsEnabled() {
		t.Error("expected tracker to be enabled")
	}

	tracker.Stop()
}

func TestTrackerFlushesEvent(t *testing.T) {
	writer := &mockWriter{}
	tracker := NewTracker(writer)
	defer tracker.Stop()

	tracker.Track(NewQueryEvent(KindSolve, "two sum", 3, 120*time.Millisecond))

	// Give the background flush time to run.
	deadline := time.Now().Add(2 * time.Second)
	for writer.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if writer.count() != 1 {
		t.Fatalf("got %d records, want 1", writer.count())
	}

	writer.mu.Lock()
	rec := writer.records[0]
	writer.mu.Unlock()

	if rec.Kind != KindSolve {
		t.Errorf("Kind = %q, want %q", rec.Kind, KindSolve)
	}
	if rec.ID == "" {
		t.Error("expected non-empty event ID")
	}
	if rec.QueryHash == "" || rec.QueryHash == "two sum" {
		t.Errorf("query text must be stored hashed, got %q", rec.QueryHash)
	}
	if rec.ResultCount != 3 {
		t.Errorf("ResultCount = %d, want 3", rec.ResultCount)
	}
	if rec.DurationMs != 120 {
		t.Errorf("DurationMs = %d, want 120", rec.DurationMs)
	}
}

func TestTrackerStopFlushesRemaining(t *testing.T) {
	writer := &mockWriter{}
	tracker := NewTracker(writer)

	for i := 0; i < 25; i++ {
		tracker.Track(NewQueryEvent(KindSearch, "query", i, time.Millisecond))
	}

	tracker.Stop()

	if writer.count() != 25 {
		t.Errorf("got %d records after Stop, want 25", writer.count())
	}
}

func TestTrackerDisable(t *testing.T) {
	writer := &mockWriter{}
	tracker := NewTracker(writer)

	tracker.Disable()
	if tracker.IsEnabled() {
		t.Error("expected tracker disabled")
	}

	tracker.Track(NewQueryEvent(KindRetrieve, "query", 1, time.Millisecond))
	tracker.Stop()

	if writer.count() != 0 {
		t.Errorf("disabled tracker recorded %d events", writer.count())
	}
}

func TestTrackerEnableAfterDisable(t *testing.T) {
	writer := &mockWriter{}
	tracker := NewTracker(writer)

	tracker.Disable()
	tracker.Enable()
	tracker.Track(NewQueryEvent(KindSolve, "query", 1, time.Millisecond))
	tracker.Stop()

	if writer.count() != 1 {
		t.Errorf("got %d records, want 1", writer.count())
	}
}

func TestQueryEventIDsUnique(t *testing.T) {
	a := NewQueryEvent(KindSolve, "q", 0, 0)
	b := NewQueryEvent(KindSolve, "q", 0, 0)
	if a.ID == b.ID {
		t.Error("expected distinct event IDs")
	}
}

func TestHashQueryEmpty(t *testing.T) {
	if got := hashQuery(""); got != "" {
		t.Errorf("hashQuery(\"\") = %q, want empty", got)
	}
}
