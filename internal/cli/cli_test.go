package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadProblemFromArg(t *testing.T) {
	got, err := readProblem([]string{"  two sum  "}, "", strings.NewReader(""))
	if err != nil {
		t.Fatalf("readProblem: %v", err)
	}
	if got != "two sum" {
		t.Errorf("got %q", got)
	}
}

func TestReadProblemFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.txt")
	if err := os.WriteFile(path, []byte("reverse a linked list\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readProblem(nil, path, strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("readProblem: %v", err)
	}
	if got != "reverse a linked list" {
		t.Errorf("got %q", got)
	}
}

func TestReadProblemFromStdin(t *testing.T) {
	got, err := readProblem(nil, "", strings.NewReader("merge intervals\n"))
	if err != nil {
		t.Fatalf("readProblem: %v", err)
	}
	if got != "merge intervals" {
		t.Errorf("got %q", got)
	}
}

func TestReadProblemEmpty(t *testing.T) {
	if _, err := readProblem(nil, "", strings.NewReader("   \n")); err == nil {
		t.Fatal("expected error for empty problem")
	}
}

func TestReadProblemMissingFile(t *testing.T) {
	if _, err := readProblem(nil, "/nonexistent/problem.txt", strings.NewReader("")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFeedbackRequiresOnePolarity(t *testing.T) {
	cmd := NewFeedbackCmd()
	cmd.SetArgs([]string{"some-solution-id"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--positive or --negative") {
		t.Errorf("expected polarity error, got %v", err)
	}
}

func TestSolveCmdFlags(t *testing.T) {
	cmd := NewSolveCmd()
	if cmd.Flags().Lookup("language") == nil {
		t.Error("missing --language flag")
	}
	if cmd.Flags().Lookup("file") == nil {
		t.Error("missing --file flag")
	}
}

func TestKnowledgeCmdSubcommands(t *testing.T) {
	cmd := NewKnowledgeCmd()

	want := map[string]bool{"list": false, "show": false, "search": false, "reindex": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing knowledge subcommand %q", name)
		}
	}
}

func TestHistoryCmdSubcommands(t *testing.T) {
	cmd := NewHistoryCmd()

	want := map[string]bool{"status": false, "clear": false, "disable": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing history subcommand %q", name)
		}
	}
}
