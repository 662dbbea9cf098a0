package storage

import (
	"fmt"
	"sort"
	"time"
)

// AddFeedback appends a feedback record for a solution. Feedback is never
// deduplicated, mutated, or deleted.
//
// The id is the solution id plus a nanosecond timestamp suffix, so
// concurrent submissions for the same solution do not collide the way a
// second-granularity suffix would.
func (s *SQLiteStore) AddFeedback(solutionID string, isPositive bool, comment string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := time.Now()
	id := fmt.Sprintf("%s_%d", solutionID, createdAt.UnixNano())

	positive := 0
	if isPositive {
		positive = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO feedback (id, solution_id, is_positive, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, solutionID, positive, comment, formatTime(createdAt))
	if err != nil {
		return "", fmt.Errorf("failed to write feedback: %w", err)
	}

	s.feedback[id] = feedbackMeta{ID: id, SolutionID: solutionID, IsPositive: isPositive, CreatedAt: createdAt}

	return id, nil
}

// FeedbackForSolution returns all feedback for a solution, newest first.
func (s *SQLiteStore) FeedbackForSolution(solutionID string) ([]Feedback, error) {
	rows, err := s.db.Query(`
		SELECT id, solution_id, is_positive, comment, created_at
		FROM feedback WHERE solution_id = ?
	`, solutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var feedbacks []Feedback
	for rows.Next() {
		var f Feedback
		var positive int
		var createdStr string

		if err := rows.Scan(&f.ID, &f.SolutionID, &positive, &f.Comment, &createdStr); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}

		f.IsPositive = positive == 1
		f.CreatedAt, err = parseTime(createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse feedback timestamp: %w", err)
		}

		feedbacks = append(feedbacks, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}

	sort.Slice(feedbacks, func(i, j int) bool {
		return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt)
	})

	return feedbacks, nil
}

// Statistics summarizes the store contents from the in-memory index.
// PositiveRate is 0 when there is no feedback at all.
func (s *SQLiteStore) Statistics() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalProblems:  len(s.problems),
		TotalSolutions: len(s.solutions),
		TotalFeedback:  len(s.feedback),
	}

	for _, meta := range s.feedback {
		if meta.IsPositive {
			stats.PositiveFeedback++
		}
	}
	stats.NegativeFeedback = stats.TotalFeedback - stats.PositiveFeedback

	if stats.TotalFeedback > 0 {
		stats.PositiveRate = float64(stats.PositiveFeedback) / float64(stats.TotalFeedback)
	}

	return stats
}
