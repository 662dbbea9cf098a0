package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"
)

// AddSolution stores a solution keyed by hash(problemID + ":" + code).
// Same idempotent contract as AddProblem: an already-indexed id is returned
// without a new write.
func (s *SQLiteStore) AddSolution(problemID, code, language, reasoning string) (string, error) {
	id := HashText(problemID + ":" + code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.solutions[id]; exists {
		return id, nil
	}

	createdAt := time.Now()

	_, err := s.db.Exec(`
		INSERT INTO solutions (id, problem_id, code, language, reasoning, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, problemID, code, language, reasoning, formatTime(createdAt))
	if err != nil {
		return "", fmt.Errorf("failed to write solution: %w", err)
	}

	s.solutions[id] = solutionMeta{ID: id, ProblemID: problemID, Language: language, CreatedAt: createdAt}

	return id, nil
}

// GetSolution returns a solution or ErrNotFound.
func (s *SQLiteStore) GetSolution(id string) (*Solution, error) {
	s.mu.RLock()
	_, indexed := s.solutions[id]
	s.mu.RUnlock()

	if !indexed {
		return nil, ErrNotFound
	}

	row := s.db.QueryRow(`
		SELECT id, problem_id, code, language, reasoning, created_at
		FROM solutions WHERE id = ?
	`, id)

	var sol Solution
	var createdStr string
	err := row.Scan(&sol.ID, &sol.ProblemID, &sol.Code, &sol.Language, &sol.Reasoning, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index inconsistency: solution %s has no backing record", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read solution: %w", err)
	}

	sol.CreatedAt, err = parseTime(createdStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solution timestamp: %w", err)
	}

	return &sol, nil
}

// SolutionIDsForProblem returns the ids of all solutions recorded for a
// problem, oldest first.
func (s *SQLiteStore) SolutionIDsForProblem(problemID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas := make([]solutionMeta, 0)
	for _, meta := range s.solutions {
		if meta.ProblemID == problemID {
			metas = append(metas, meta)
		}
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.Before(metas[j].CreatedAt)
	})

	ids := make([]string, len(metas))
	for i, meta := range metas {
		ids[i] = meta.ID
	}
	return ids
}
