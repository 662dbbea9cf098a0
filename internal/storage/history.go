package storage

import (
	"fmt"
	"time"
)

// RecordQuery stores a query analytics record.
func (s *SQLiteStore) RecordQuery(rec QueryRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO query_history (id, kind, query_hash, timestamp, result_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, rec.QueryHash, formatTime(rec.Timestamp), rec.ResultCount, rec.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// QueryHistory returns query records since the given time, newest first.
func (s *SQLiteStore) QueryHistory(since time.Time) ([]QueryRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, query_hash, timestamp, result_count, duration_ms
		FROM query_history
		WHERE timestamp >= ?
		ORDER BY timestamp DESC
	`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		var timestampStr string

		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.QueryHash, &timestampStr, &rec.ResultCount, &rec.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		rec.Timestamp, err = parseTime(timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history timestamp: %w", err)
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}

// ClearQueryHistory deletes all query analytics records.
func (s *SQLiteStore) ClearQueryHistory() error {
	if _, err := s.db.Exec("DELETE FROM query_history"); err != nil {
		return fmt.Errorf("failed to clear query history: %w", err)
	}
	return nil
}
