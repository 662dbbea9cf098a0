/*
Package mcp implements the stdio JSON-RPC server that exposes the coach
as MCP meta-tools:
  - coach_solve: generate a solution for a coding problem
  - coach_feedback: record a verdict on a generated solution
  - coach_search: hybrid search over the knowledge base
  - coach_stats: feedback store statistics
  - coach_knowledge: list or show knowledge entries
*/
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vuhm/codecoach/internal/knowledge"
	"github.com/vuhm/codecoach/internal/learning"
	"github.com/vuhm/codecoach/internal/reasoner"
	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

const serverVersion = "0.1.0"

// defaultSearchLimit is used when a coach_search call omits limit.
const defaultSearchLimit = 5

// Solver generates solutions for problems.
type Solver interface {
	Solve(ctx context.Context, problem, language string) (*reasoner.Solution, error)
}

// Searcher queries the knowledge base.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]retrieval.Result, error)
}

// Server handles MCP requests over stdio.
type Server struct {
	solver  Solver
	search  Searcher
	store   storage.Store
	catalog *knowledge.Catalog
	tracker *learning.Tracker

	in  io.Reader
	out io.Writer
}

// NewServer creates an MCP server. tracker may be nil to disable analytics.
func NewServer(solver Solver, search Searcher, store storage.Store, catalog *knowledge.Catalog, tracker *learning.Tracker) *Server {
	return &Server{
		solver:  solver,
		search:  search,
		store:   store,
		catalog: catalog,
		tracker: tracker,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Run serves requests until the input stream is closed.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(err)
			continue
		}

		if response != nil {
			s.sendResponse(response)
		}
	}

	return scanner.Err()
}

// Request is an incoming JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleRequest(data []byte) (*Response, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(&req)
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32601, Message: "Method not found"},
		}, nil
	}
}

func (s *Server) handleInitialize(req *Request) (*Response, error) {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "codecoach",
				"version": serverVersion,
			},
		},
	}, nil
}

func (s *Server) handleToolsList(req *Request) (*Response, error) {
	tools := []map[string]interface{}{
		{
			"name": "coach_solve",
			"description": `Generate a code solution for a programming problem.

The coach retrieves relevant algorithm knowledge, applies lessons learned
from feedback on similar problems, and walks through a chain-of-thought
before writing code. Returns the code, the full reasoning, and a solution id
for later feedback.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"problem": map[string]interface{}{
						"type":        "string",
						"description": "Full problem statement",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Target language (default: python)",
					},
				},
				"required": []string{"problem"},
			},
		},
		{
			"name": "coach_feedback",
			"description": `Record feedback on a generated solution.

Feedback on solved problems improves future generations: comments on
similar problems are surfaced as dos and don'ts in later prompts.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"solution_id": map[string]interface{}{
						"type":        "string",
						"description": "Solution id returned by coach_solve",
					},
					"positive": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the solution was good",
					},
					"comment": map[string]interface{}{
						"type":        "string",
						"description": "What was good or bad about it (optional)",
					},
				},
				"required": []string{"solution_id", "positive"},
			},
		},
		{
			"name": "coach_search",
			"description": `Search the algorithm and data structure knowledge base.

Combines semantic similarity with keyword matching. Use natural language,
e.g. "find pairs in sorted array" or "shortest path".`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Natural language search query",
					},
					"limit": map[string]interface{}{
						"type":        "number",
						"description": fmt.Sprintf("Maximum results (default %d)", defaultSearchLimit),
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name":        "coach_stats",
			"description": "Show feedback store statistics: problems, solutions, feedback counts, and positive rate.",
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			"name": "coach_knowledge",
			"description": `Browse the knowledge base.

Without arguments lists all entries. With category ("algorithms" or
"data_structures") lists that category. With id shows one entry in full.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Category to list",
						"enum":        []string{knowledge.CategoryAlgorithms, knowledge.CategoryDataStructures},
					},
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Entry id to show in full",
					},
				},
			},
		},
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": tools,
		},
	}, nil
}

func (s *Server) handleToolsCall(req *Request) (*Response, error) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	ctx := context.Background()

	var result string
	var err error

	switch params.Name {
	case "coach_solve":
		problem, _ := params.Arguments["problem"].(string)
		language, _ := params.Arguments["language"].(string)
		result, err = s.execSolve(ctx, problem, language)
	case "coach_feedback":
		solutionID, _ := params.Arguments["solution_id"].(string)
		positive, _ := params.Arguments["positive"].(bool)
		comment, _ := params.Arguments["comment"].(string)
		result, err = s.execFeedback(solutionID, positive, comment)
	case "coach_search":
		query, _ := params.Arguments["query"].(string)
		limit := defaultSearchLimit
		if n, ok := params.Arguments["limit"].(float64); ok && n > 0 {
			limit = int(n)
		}
		result, err = s.execSearch(ctx, query, limit)
	case "coach_stats":
		result, err = s.execStats()
	case "coach_knowledge":
		category, _ := params.Arguments["category"].(string)
		id, _ := params.Arguments["id"].(string)
		result, err = s.execKnowledge(category, id)
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32602, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}, nil
	}

	if err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32000, Message: err.Error()},
		}, nil
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": result,
				},
			},
		},
	}, nil
}

func (s *Server) execSolve(ctx context.Context, problem, language string) (string, error) {
	if strings.TrimSpace(problem) == "" {
		return "", fmt.Errorf("problem must not be empty")
	}
	if language == "" {
		language = "python"
	}

	start := time.Now()
	solution, err := s.solver.Solve(ctx, problem, language)
	if err != nil {
		return "", err
	}
	s.track(learning.KindSolve, problem, 1, time.Since(start))

	var b strings.Builder
	fmt.Fprintf(&b, "Solution %s (problem %s)\n\n", solution.SolutionID, solution.ProblemID)
	fmt.Fprintf(&b, "Features: type=%s difficulty=%s\n\n", solution.Features.ProblemType, solution.Features.Difficulty)
	if solution.Code != "" {
		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, solution.Code)
	}
	b.WriteString("Reasoning:\n")
	b.WriteString(solution.Reasoning)
	fmt.Fprintf(&b, "\n\nUse coach_feedback with solution_id=%s to rate this solution.", solution.SolutionID)
	return b.String(), nil
}

func (s *Server) execFeedback(solutionID string, positive bool, comment string) (string, error) {
	if solutionID == "" {
		return "", fmt.Errorf("solution_id must not be empty")
	}

	if _, err := s.store.GetSolution(solutionID); err != nil {
		return "", fmt.Errorf("looking up solution: %w", err)
	}

	feedbackID, err := s.store.AddFeedback(solutionID, positive, comment)
	if err != nil {
		return "", fmt.Errorf("recording feedback: %w", err)
	}

	verdict := "negative"
	if positive {
		verdict = "positive"
	}
	return fmt.Sprintf("Recorded %s feedback %s for solution %s.", verdict, feedbackID, solutionID), nil
}

func (s *Server) execSearch(ctx context.Context, query string, limit int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}

	start := time.Now()
	results, err := s.search.Search(ctx, query, limit)
	if err != nil {
		return "", fmt.Errorf("searching knowledge base: %w", err)
	}
	s.track(learning.KindSearch, query, len(results), time.Since(start))

	if len(results) == 0 {
		return fmt.Sprintf("No knowledge entries match %q.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Knowledge entries for %q:\n\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "  • %s (%s, score %.3f): %s\n", r.Entry.Name, r.Entry.ID, r.Score, r.Entry.Description)
	}
	b.WriteString("\nUse coach_knowledge with an id for the full entry.")
	return b.String(), nil
}

func (s *Server) execStats() (string, error) {
	stats := s.store.Statistics()

	var b strings.Builder
	b.WriteString("Feedback store statistics:\n")
	fmt.Fprintf(&b, "  Problems:      %d\n", stats.TotalProblems)
	fmt.Fprintf(&b, "  Solutions:     %d\n", stats.TotalSolutions)
	fmt.Fprintf(&b, "  Feedback:      %d\n", stats.TotalFeedback)
	fmt.Fprintf(&b, "  Positive rate: %.1f%%\n", stats.PositiveRate*100)
	return b.String(), nil
}

func (s *Server) execKnowledge(category, id string) (string, error) {
	if id != "" {
		entry, ok := s.catalog.ItemByID(id)
		if !ok {
			return "", fmt.Errorf("knowledge entry '%s' not found", id)
		}
		return formatEntry(entry), nil
	}

	categories := []string{knowledge.CategoryAlgorithms, knowledge.CategoryDataStructures}
	if category != "" {
		categories = []string{category}
	}

	var b strings.Builder
	for _, cat := range categories {
		items := s.catalog.Items(cat)
		fmt.Fprintf(&b, "%s (%d):\n", cat, len(items))
		for _, entry := range items {
			fmt.Fprintf(&b, "  • %s (%s): %s\n", entry.Name, entry.ID, entry.Description)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatEntry(entry knowledge.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", entry.Name, entry.ID)
	fmt.Fprintf(&b, "Category:    %s\n", entry.Category)
	fmt.Fprintf(&b, "Description: %s\n", entry.Description)
	if entry.Complexity != "" {
		fmt.Fprintf(&b, "Complexity:  %s\n", entry.Complexity)
	}
	if len(entry.Applications) > 0 {
		fmt.Fprintf(&b, "Applications: %s\n", strings.Join(entry.Applications, ", "))
	}
	if len(entry.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords:    %s\n", strings.Join(entry.Keywords, ", "))
	}
	if entry.Example != "" {
		fmt.Fprintf(&b, "Example:\n%s\n", entry.Example)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Server) track(kind, query string, resultCount int, duration time.Duration) {
	if s.tracker == nil {
		return
	}
	s.tracker.Track(learning.NewQueryEvent(kind, query, resultCount, duration))
}

func (s *Server) sendResponse(resp *Response) {
	data, _ := json.Marshal(resp)
	fmt.Fprintln(s.out, string(data))
}

func (s *Server) sendError(err error) {
	s.sendResponse(&Response{
		JSONRPC: "2.0",
		ID:      nil,
		Error:   &Error{Code: -32700, Message: err.Error()},
	})
}
