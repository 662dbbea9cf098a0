package benchmark

import (
	"strings"
	"testing"

	"github.com/vuhm/codecoach/internal/knowledge"
	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

func TestCountTokens(t *testing.T) {
	if got := CountTokens(strings.Repeat("a", 400)); got != 100 {
		t.Errorf("CountTokens = %d, want 100", got)
	}
	if got := CountTokens(""); got != 0 {
		t.Errorf("CountTokens(\"\") = %d, want 0", got)
	}
}

func TestRunOverheadPositive(t *testing.T) {
	problem := "Given an array of integers, return indices of the two numbers that add up to a target."
	knowledgeResults := []retrieval.Result{
		{Entry: knowledge.Entry{Name: "Hash Table", Description: "Constant time lookups."}},
	}

	result := Run(problem, storage.DefaultFeatures(), knowledgeResults, "", "python")

	if result.Enriched.Tokens <= result.Bare.Tokens {
		t.Errorf("enriched tokens %d should exceed bare tokens %d",
			result.Enriched.Tokens, result.Bare.Tokens)
	}
	if result.TokenOverhead != result.Enriched.Tokens-result.Bare.Tokens {
		t.Error("TokenOverhead inconsistent with estimates")
	}
	if result.KnowledgeCount != 1 {
		t.Errorf("KnowledgeCount = %d, want 1", result.KnowledgeCount)
	}
	if result.HasGuidance {
		t.Error("HasGuidance should be false without history")
	}
}

func TestRunWithGuidance(t *testing.T) {
	result := Run("p", storage.DefaultFeatures(), nil, "### Lessons from past feedback\n- ✓ x\n", "go")
	if !result.HasGuidance {
		t.Error("HasGuidance should be true")
	}
}

func TestFormatResult(t *testing.T) {
	result := Run("some problem statement", storage.DefaultFeatures(), nil, "", "go")
	out := FormatResult(result)

	for _, want := range []string{"Bare problem", "Enriched chain-of-thought prompt", "Enrichment overhead"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
