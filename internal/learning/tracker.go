package learning

import (
	"log"
	"sync"
	"time"

	"github.com/vuhm/codecoach/internal/storage"
)

const (
	// eventQueueSize is the buffer size for the event queue.
	// If full, events are dropped (non-blocking).
	eventQueueSize = 1000

	// batchFlushSize is the number of events that triggers an immediate flush.
	batchFlushSize = 10

	// flushInterval is how often pending events are flushed.
	flushInterval = 50 * time.Millisecond
)

// HistoryWriter is the storage slice the tracker writes through.
type HistoryWriter interface {
	RecordQuery(rec storage.QueryRecord) error
}

// Tracker records query events in the background with non-blocking writes.
type Tracker struct {
	writer     HistoryWriter
	eventQueue chan QueryEvent
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	enabled    bool
	mu         sync.RWMutex
}

// NewTracker creates a tracker with background processing.
func NewTracker(writer HistoryWriter) *Tracker {
	t := &Tracker{
		writer:     writer,
		eventQueue: make(chan QueryEvent, eventQueueSize),
		stopChan:   make(chan struct{}),
		enabled:    true,
	}

	t.wg.Add(1)
	go t.processEvents()

	return t
}

// Track queues a query event (non-blocking).
// If the queue is full, the event is dropped and a warning is logged.
func (t *Tracker) Track(event QueryEvent) {
	if !t.isEnabled() {
		return
	}

	select {
	case t.eventQueue <- event:
	default:
		log.Printf("Warning: analytics queue full, dropping %s event", event.Kind)
	}
}

// Stop gracefully shuts down the tracker, flushing remaining events.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
		t.wg.Wait()
	})
}

// Disable disables tracking (events are ignored).
func (t *Tracker) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
}

// Enable enables tracking.
func (t *Tracker) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = true
}

// IsEnabled returns whether tracking is enabled.
func (t *Tracker) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func (t *Tracker) isEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled && t.writer != nil
}

// QueueSize returns the current number of queued events.
func (t *Tracker) QueueSize() int {
	return len(t.eventQueue)
}

// processEvents runs in the background, batching and flushing events.
func (t *Tracker) processEvents() {
	defer t.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]QueryEvent, 0, batchFlushSize)

	for {
		select {
		case event, ok := <-t.eventQueue:
			if !ok {
				t.flush(batch)
				return
			}

			batch = append(batch, event)

			if len(batch) >= batchFlushSize {
				t.flush(batch)
				batch = make([]QueryEvent, 0, batchFlushSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = make([]QueryEvent, 0, batchFlushSize)
			}

		case <-t.stopChan:
			// Drain whatever is still queued, then flush and exit.
			for {
				select {
				case event, ok := <-t.eventQueue:
					if !ok {
						t.flush(batch)
						return
					}
					batch = append(batch, event)
					if len(batch) >= batchFlushSize {
						t.flush(batch)
						batch = make([]QueryEvent, 0, batchFlushSize)
					}
				default:
					t.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events to storage.
func (t *Tracker) flush(events []QueryEvent) {
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if err := t.writer.RecordQuery(event.ToRecord()); err != nil {
			log.Printf("Warning: failed to record query event: %v", err)
		}
	}
}
