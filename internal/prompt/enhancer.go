package prompt

import (
	"fmt"
	"log"
	"strings"

	"github.com/vuhm/codecoach/internal/similarity"
	"github.com/vuhm/codecoach/internal/storage"
)

const (
	// similarProblemLimit bounds how many similar problems feed the history
	// section.
	similarProblemLimit = 3

	// insightLimit caps bullets per polarity.
	insightLimit = 3
)

// historySource is the slice of the feedback store the enhancer needs.
type historySource interface {
	similarity.ProblemSource
	SolutionIDsForProblem(problemID string) []string
	FeedbackForSolution(solutionID string) ([]storage.Feedback, error)
}

// Enhancer turns accumulated feedback on similar problems into a prompt
// section of dos and don'ts.
type Enhancer struct {
	store historySource
}

// NewEnhancer creates an enhancer backed by the given store.
func NewEnhancer(store historySource) *Enhancer {
	return &Enhancer{store: store}
}

// HistorySection builds the learned-lessons section for a problem with the
// given features. Returns "" when no similar problem carries commented
// feedback. Store read failures are logged and skipped so a bad record never
// blocks generation.
func (e *Enhancer) HistorySection(features storage.FeatureSet) string {
	similar, err := similarity.MostSimilar(e.store, features, similarProblemLimit)
	if err != nil {
		log.Printf("Warning: ranking similar problems: %v", err)
		return ""
	}
	if len(similar) == 0 {
		return ""
	}

	var positive, negative []string
	for _, scored := range similar {
		for _, solutionID := range e.store.SolutionIDsForProblem(scored.Problem.ID) {
			records, err := e.store.FeedbackForSolution(solutionID)
			if err != nil {
				log.Printf("Warning: reading feedback for %s: %v", solutionID, err)
				continue
			}
			for _, fb := range records {
				if fb.Comment == "" {
					continue
				}
				if fb.IsPositive {
					positive = append(positive, fb.Comment)
				} else {
					negative = append(negative, fb.Comment)
				}
			}
		}
	}

	if len(positive) == 0 && len(negative) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("### Lessons from past feedback\n\n")
	if len(positive) > 0 {
		b.WriteString("Approaches that worked well:\n")
		for _, insight := range capList(positive, insightLimit) {
			fmt.Fprintf(&b, "- ✓ %s\n", insight)
		}
	}
	if len(negative) > 0 {
		if len(positive) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Problems to avoid:\n")
		for _, insight := range capList(negative, insightLimit) {
			fmt.Fprintf(&b, "- ✗ %s\n", insight)
		}
	}

	return b.String()
}

func capList(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
