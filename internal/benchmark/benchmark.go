/*
Package benchmark estimates the prompt token cost of enrichment.

It compares:
 1. Bare prompt: the raw problem statement sent as-is
 2. Enriched prompt: the chain-of-thought prompt with retrieved knowledge
    and feedback guidance woven in

Token estimation uses tiktoken-compatible counting (GPT-4/Claude
approximation: ~4 characters per token for English text).
*/
package benchmark

import (
	"fmt"
	"strings"

	"github.com/vuhm/codecoach/internal/prompt"
	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

// CharsPerToken is the estimated characters per token for English prose.
const CharsPerToken = 4

// PromptEstimate describes the token cost of one prompt variant.
type PromptEstimate struct {
	Characters  int    `json:"characters"`
	Tokens      int    `json:"tokens"`
	Description string `json:"description"`
}

// Result contains the bare-vs-enriched comparison.
type Result struct {
	Bare            PromptEstimate `json:"bare"`
	Enriched        PromptEstimate `json:"enriched"`
	TokenOverhead   int            `json:"tokenOverhead"`
	OverheadPercent float64        `json:"overheadPercent"`
	KnowledgeCount  int            `json:"knowledgeCount"`
	HasGuidance     bool           `json:"hasGuidance"`
}

// CountTokens estimates the token count of a text.
func CountTokens(text string) int {
	return len(text) / CharsPerToken
}

// Run measures the enrichment overhead for one problem. knowledge and history
// are whatever retrieval and the feedback enhancer produced for it.
func Run(problem string, features storage.FeatureSet, knowledge []retrieval.Result, history, language string) *Result {
	bareTokens := CountTokens(problem)
	bare := PromptEstimate{
		Characters:  len(problem),
		Tokens:      bareTokens,
		Description: "raw problem statement",
	}

	enrichedPrompt := prompt.Build(problem, features, knowledge, history, language)
	enrichedTokens := CountTokens(enrichedPrompt)
	enriched := PromptEstimate{
		Characters: len(enrichedPrompt),
		Tokens:     enrichedTokens,
		Description: fmt.Sprintf("chain-of-thought prompt with %d knowledge entries",
			len(knowledge)),
	}

	overhead := enrichedTokens - bareTokens
	overheadPercent := 0.0
	if bareTokens > 0 {
		overheadPercent = float64(overhead) / float64(bareTokens) * 100
	}

	return &Result{
		Bare:            bare,
		Enriched:        enriched,
		TokenOverhead:   overhead,
		OverheadPercent: overheadPercent,
		KnowledgeCount:  len(knowledge),
		HasGuidance:     history != "",
	}
}

// FormatResult formats the benchmark result for display.
func FormatResult(result *Result) string {
	var sb strings.Builder

	sb.WriteString("Prompt token estimate\n")
	sb.WriteString("=====================\n\n")
	sb.WriteString("Bare problem:\n")
	sb.WriteString(fmt.Sprintf("  Characters: %d\n", result.Bare.Characters))
	sb.WriteString(fmt.Sprintf("  Tokens:     ~%d\n\n", result.Bare.Tokens))
	sb.WriteString("Enriched chain-of-thought prompt:\n")
	sb.WriteString(fmt.Sprintf("  Characters: %d\n", result.Enriched.Characters))
	sb.WriteString(fmt.Sprintf("  Tokens:     ~%d\n", result.Enriched.Tokens))
	sb.WriteString(fmt.Sprintf("  Knowledge entries: %d\n", result.KnowledgeCount))
	sb.WriteString(fmt.Sprintf("  Feedback guidance: %v\n\n", result.HasGuidance))
	sb.WriteString(fmt.Sprintf("Enrichment overhead: ~%d tokens (+%.1f%%)\n",
		result.TokenOverhead, result.OverheadPercent))

	return sb.String()
}
