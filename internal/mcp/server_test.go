package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vuhm/codecoach/internal/knowledge"
	"github.com/vuhm/codecoach/internal/reasoner"
	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

type mockSolver struct {
	solution *reasoner.Solution
	err      error
}

func (m *mockSolver) Solve(ctx context.Context, problem, language string) (*reasoner.Solution, error) {
	return m.solution, m.err
}

type mockSearcher struct {
	results []retrieval.Result
	err     error
}

func (m *mockSearcher) Search(ctx context.Context, query string, limit int) ([]retrieval.Result, error) {
	return m.results, m.err
}

func newTestServer(t *testing.T) (*Server, *storage.SQLiteStore) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "feedback.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	catalog := knowledge.NewCatalog(dir)
	if err := catalog.Load(); err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	solver := &mockSolver{solution: &reasoner.Solution{
		ProblemID:  "p1",
		SolutionID: "s1",
		Code:       "def f():\n    pass",
		Reasoning:  "step by step",
		Features:   storage.DefaultFeatures(),
	}}
	searcher := &mockSearcher{results: []retrieval.Result{
		{Entry: knowledge.Entry{ID: "binary-search", Name: "Binary Search", Description: "halve the range"}, Score: 0.8},
	}}

	return NewServer(solver, searcher, store, catalog, nil), store
}

func callTool(t *testing.T, server *Server, name string, args map[string]interface{}) *Response {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatal(err)
	}

	req, err := json.Marshal(Request{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := server.handleRequest(req)
	if err != nil {
		t.Fatalf("handleRequest: %v", err)
	}
	return resp
}

func resultText(t *testing.T, resp *Response) string {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected tool error: %s", resp.Error.Message)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result shape %T", resp.Result)
	}
	content := result["content"].([]map[string]interface{})
	return content[0]["text"].(string)
}

func TestInitialize(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`))
	if err != nil {
		t.Fatalf("handleRequest: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "codecoach" {
		t.Errorf("server name = %v", info["name"])
	}
}

func TestToolsListExposesCoachTools(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	if err != nil {
		t.Fatalf("handleRequest: %v", err)
	}

	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]map[string]interface{})

	want := map[string]bool{
		"coach_solve": false, "coach_feedback": false, "coach_search": false,
		"coach_stats": false, "coach_knowledge": false,
	}
	for _, tool := range tools {
		name := tool["name"].(string)
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected tool %q", name)
		}
		want[name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing tool %q", name)
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","id":3,"method":"bogus"}`))
	if err != nil {
		t.Fatalf("handleRequest: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("expected method-not-found error, got %+v", resp.Error)
	}
}

func TestCoachSolve(t *testing.T) {
	server, _ := newTestServer(t)

	text := resultText(t, callTool(t, server, "coach_solve", map[string]interface{}{
		"problem": "two sum",
	}))

	for _, want := range []string{"s1", "def f():", "coach_feedback"} {
		if !strings.Contains(text, want) {
			t.Errorf("solve output missing %q", want)
		}
	}
}

func TestCoachSolveEmptyProblem(t *testing.T) {
	server, _ := newTestServer(t)

	resp := callTool(t, server, "coach_solve", map[string]interface{}{"problem": "  "})
	if resp.Error == nil {
		t.Fatal("expected error for empty problem")
	}
}

func TestCoachSolveFailure(t *testing.T) {
	server, _ := newTestServer(t)
	server.solver = &mockSolver{err: errors.New("model offline")}

	resp := callTool(t, server, "coach_solve", map[string]interface{}{"problem": "p"})
	if resp.Error == nil || !strings.Contains(resp.Error.Message, "model offline") {
		t.Errorf("expected model error, got %+v", resp.Error)
	}
}

func TestCoachFeedback(t *testing.T) {
	server, store := newTestServer(t)

	problemID, err := store.AddProblem("p", storage.DefaultFeatures())
	if err != nil {
		t.Fatal(err)
	}
	solutionID, err := store.AddSolution(problemID, "code", "go", "r")
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, callTool(t, server, "coach_feedback", map[string]interface{}{
		"solution_id": solutionID,
		"positive":    true,
		"comment":     "clean",
	}))
	if !strings.Contains(text, "positive") {
		t.Errorf("feedback output = %q", text)
	}

	if stats := store.Statistics(); stats.TotalFeedback != 1 {
		t.Errorf("TotalFeedback = %d, want 1", stats.TotalFeedback)
	}
}

func TestCoachFeedbackUnknownSolution(t *testing.T) {
	server, _ := newTestServer(t)

	resp := callTool(t, server, "coach_feedback", map[string]interface{}{
		"solution_id": "nope",
		"positive":    true,
	})
	if resp.Error == nil {
		t.Fatal("expected error for unknown solution")
	}
}

func TestCoachSearch(t *testing.T) {
	server, _ := newTestServer(t)

	text := resultText(t, callTool(t, server, "coach_search", map[string]interface{}{
		"query": "find element in sorted array",
	}))
	if !strings.Contains(text, "Binary Search") {
		t.Errorf("search output missing entry: %q", text)
	}
}

func TestCoachSearchNoResults(t *testing.T) {
	server, _ := newTestServer(t)
	server.search = &mockSearcher{}

	text := resultText(t, callTool(t, server, "coach_search", map[string]interface{}{
		"query": "quantum chromodynamics",
	}))
	if !strings.Contains(text, "No knowledge entries") {
		t.Errorf("search output = %q", text)
	}
}

func TestCoachStats(t *testing.T) {
	server, _ := newTestServer(t)

	text := resultText(t, callTool(t, server, "coach_stats", nil))
	if !strings.Contains(text, "Problems:") || !strings.Contains(text, "Positive rate:") {
		t.Errorf("stats output = %q", text)
	}
}

func TestCoachKnowledgeList(t *testing.T) {
	server, _ := newTestServer(t)

	text := resultText(t, callTool(t, server, "coach_knowledge", nil))
	if !strings.Contains(text, knowledge.CategoryAlgorithms) ||
		!strings.Contains(text, knowledge.CategoryDataStructures) {
		t.Errorf("knowledge listing missing categories: %q", text)
	}
}

func TestCoachKnowledgeByID(t *testing.T) {
	server, _ := newTestServer(t)

	text := resultText(t, callTool(t, server, "coach_knowledge", map[string]interface{}{
		"id": "binary-search",
	}))
	if !strings.Contains(text, "Binary Search") {
		t.Errorf("entry output = %q", text)
	}

	resp := callTool(t, server, "coach_knowledge", map[string]interface{}{"id": "nope"})
	if resp.Error == nil {
		t.Error("expected error for unknown entry id")
	}
}

func TestRunOverPipedRequests(t *testing.T) {
	server, _ := newTestServer(t)

	var out strings.Builder
	server.in = strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
			`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")
	server.out = &out

	if err := server.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d response lines, want 2", len(lines))
	}
	for _, line := range lines {
		var resp Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Errorf("invalid response JSON %q: %v", line, err)
		}
	}
}
