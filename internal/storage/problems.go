package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AddProblem stores a problem, content-addressed by the hash of its text.
//
// Repeated calls with identical text return the existing id without writing
// anything. The full record is committed before the in-memory index and the
// problem-features map are updated.
func (s *SQLiteStore) AddProblem(text string, features FeatureSet) (string, error) {
	id := HashText(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.problems[id]; exists {
		return id, nil
	}

	createdAt := time.Now()

	dsJSON, err := marshalStrings(features.DataStructures)
	if err != nil {
		return "", fmt.Errorf("failed to encode data structures: %w", err)
	}
	algoJSON, err := marshalStrings(features.Algorithms)
	if err != nil {
		return "", fmt.Errorf("failed to encode algorithms: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO problems (id, text, problem_type, difficulty, data_structures, algorithms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, text, features.ProblemType, features.Difficulty, dsJSON, algoJSON, formatTime(createdAt))
	if err != nil {
		return "", fmt.Errorf("failed to write problem: %w", err)
	}

	s.problems[id] = problemMeta{ID: id, CreatedAt: createdAt}
	s.features[id] = features

	return id, nil
}

// GetProblem returns a problem or ErrNotFound.
func (s *SQLiteStore) GetProblem(id string) (*Problem, error) {
	s.mu.RLock()
	_, indexed := s.problems[id]
	s.mu.RUnlock()

	if !indexed {
		return nil, ErrNotFound
	}

	row := s.db.QueryRow(`
		SELECT id, text, problem_type, difficulty, data_structures, algorithms, created_at
		FROM problems WHERE id = ?
	`, id)

	var p Problem
	var dsJSON, algoJSON, createdStr string
	err := row.Scan(&p.ID, &p.Text, &p.Features.ProblemType, &p.Features.Difficulty, &dsJSON, &algoJSON, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		// Indexed but no backing record: the index invariant is broken.
		return nil, fmt.Errorf("index inconsistency: problem %s has no backing record", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read problem: %w", err)
	}

	if err := unmarshalStrings(dsJSON, &p.Features.DataStructures); err != nil {
		return nil, fmt.Errorf("failed to parse data structures: %w", err)
	}
	if err := unmarshalStrings(algoJSON, &p.Features.Algorithms); err != nil {
		return nil, fmt.Errorf("failed to parse algorithms: %w", err)
	}

	p.CreatedAt, err = parseTime(createdStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem timestamp: %w", err)
	}

	return &p, nil
}

// ProblemFeatures returns a snapshot of the problem-features index used for
// similarity search.
func (s *SQLiteStore) ProblemFeatures() map[string]FeatureSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]FeatureSet, len(s.features))
	for id, f := range s.features {
		snapshot[id] = f
	}
	return snapshot
}

// marshalStrings encodes a string slice as JSON for storage. A nil slice is
// stored as an empty list.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalStrings parses JSON storage back to a string slice.
func unmarshalStrings(jsonStr string, out *[]string) error {
	return json.Unmarshal([]byte(jsonStr), out)
}
