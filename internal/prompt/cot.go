// Package prompt builds chain-of-thought prompts for code generation and
// extracts code from model responses. Prompts are enriched with retrieved
// knowledge entries and with lessons learned from feedback on similar
// problems.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

// maxKnowledgeItems caps how many retrieved entries are woven into the
// solution-approach section of the prompt.
const maxKnowledgeItems = 3

// Build assembles a chain-of-thought prompt for the given problem. knowledge
// may be nil when retrieval found nothing; history is the feedback section
// from an Enhancer and may be empty.
func Build(problem string, features storage.FeatureSet, knowledge []retrieval.Result, history, language string) string {
	var b strings.Builder

	b.WriteString("# Coding Problem\n\n")
	b.WriteString("## Problem Statement\n")
	b.WriteString(problem)
	b.WriteString("\n\n## Approach\nLet me solve this step by step:\n\n")

	fmt.Fprintf(&b, "### 1. Understand the problem\nThis is a %s problem of %s difficulty. "+
		"I need to understand the inputs, outputs, and constraints.\n\n",
		features.ProblemType, features.Difficulty)

	b.WriteString("### 2. Consider solution strategies\n")
	if len(knowledge) > 0 {
		b.WriteString("Based on relevant algorithm knowledge, these techniques may apply:\n\n")
		for i, result := range knowledge {
			if i >= maxKnowledgeItems {
				break
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", result.Entry.Name, result.Entry.Description)
		}
		b.WriteString("\n")
	}

	if history != "" {
		b.WriteString(history)
		b.WriteString("\n")
	}

	b.WriteString("### 3. Analyze complexity\n" +
		"I need to weigh the time and space complexity of each candidate approach and pick the best one.\n\n")
	b.WriteString("### 4. Design the algorithm\nNow I will lay out the concrete steps.\n\n")
	b.WriteString("### 5. Edge cases\nI need to handle:\n- empty input\n- extreme values\n- special cases\n\n")
	fmt.Fprintf(&b, "### 6. Implementation\nHere is the %s implementation:\n", language)

	return b.String()
}

// ExtractCode pulls the first fenced code block out of a model response.
// Blocks tagged with the requested language are preferred; any fenced block
// is accepted as a fallback. Returns "" when the response has no code block.
func ExtractCode(response, language string) string {
	tagged := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(language) + "(.*?)```")
	if m := tagged.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	generic := regexp.MustCompile("(?s)```(?:[a-zA-Z0-9]*\n)?(.*?)```")
	if m := generic.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}
