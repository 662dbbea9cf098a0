// Package reasoner runs the end-to-end solve pipeline: feature extraction,
// problem registration, feedback guidance, knowledge retrieval, prompt
// assembly, generation, and solution capture.
package reasoner

import (
	"context"
	"fmt"
	"log"

	"github.com/vuhm/codecoach/internal/llm"
	"github.com/vuhm/codecoach/internal/prompt"
	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

// DefaultTopK is how many knowledge entries the pipeline fetches per
// problem unless the caller overrides TopK.
const DefaultTopK = 5

// KnowledgeRetriever is the retrieval slice the pipeline needs.
type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]retrieval.Result, error)
}

// Solution is the outcome of one solve run.
type Solution struct {
	ProblemID  string             `json:"problem_id"`
	SolutionID string             `json:"solution_id"`
	Code       string             `json:"code"`
	Reasoning  string             `json:"reasoning"`
	Features   storage.FeatureSet `json:"features"`
}

// Reasoner wires the model, the knowledge retriever, and the feedback store
// into a chain-of-thought solve pipeline.
type Reasoner struct {
	model     llm.Model
	retriever KnowledgeRetriever
	store     storage.Store
	enhancer  *prompt.Enhancer

	// TopK is the number of knowledge entries retrieved per solve. New sets
	// it to DefaultTopK; callers may override it before the first Solve.
	TopK int
}

// New creates a reasoner. The enhancer reads the same store that records
// problems and solutions, so lessons apply from the second run onward.
func New(model llm.Model, retriever KnowledgeRetriever, store storage.Store) *Reasoner {
	return &Reasoner{
		model:     model,
		retriever: retriever,
		store:     store,
		enhancer:  prompt.NewEnhancer(store),
		TopK:      DefaultTopK,
	}
}

// Solve generates a solution for the problem in the given language.
//
// Feature extraction, feedback guidance, and knowledge retrieval all degrade
// gracefully; generation failure and store write failures are terminal.
func (r *Reasoner) Solve(ctx context.Context, problem, language string) (*Solution, error) {
	features := r.model.ExtractFeatures(ctx, problem)

	problemID, err := r.store.AddProblem(problem, features)
	if err != nil {
		return nil, fmt.Errorf("storing problem: %w", err)
	}

	history := r.enhancer.HistorySection(features)

	knowledge, err := r.retriever.Retrieve(ctx, problem, r.TopK)
	if err != nil {
		log.Printf("Warning: knowledge retrieval failed, continuing without it: %v", err)
		knowledge = nil
	}

	cotPrompt := prompt.Build(problem, features, knowledge, history, language)

	response, err := r.model.Generate(ctx, cotPrompt)
	if err != nil {
		return nil, fmt.Errorf("generating solution: %w", err)
	}

	code := prompt.ExtractCode(response, language)
	if code == "" {
		log.Printf("Warning: no code block in model response, storing raw reasoning only")
	}

	solutionID, err := r.store.AddSolution(problemID, code, language, response)
	if err != nil {
		return nil, fmt.Errorf("storing solution: %w", err)
	}

	return &Solution{
		ProblemID:  problemID,
		SolutionID: solutionID,
		Code:       code,
		Reasoning:  response,
		Features:   features,
	}, nil
}
