package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vuhm/codecoach/internal/learning"
)

// NewSolveCmd creates the 'solve' command.
func NewSolveCmd() *cobra.Command {
	var language string
	var fromFile string

	cmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "Generate a solution for a coding problem",
		Long: `Generate a code solution using chain-of-thought reasoning.

The problem statement is taken from the argument, from a file (--file), or
from stdin when neither is given. The coach retrieves relevant algorithm
knowledge and applies lessons from feedback on similar problems.`,
		Example: `  codecoach solve "Given an array of integers, return indices of two numbers adding to target"
  codecoach solve --file problem.txt --language go
  cat problem.txt | codecoach solve`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := readProblem(args, fromFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runSolve(problem, language)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "python", "Target language for the solution")
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Read the problem statement from a file")
	return cmd
}

// readProblem resolves the problem text from argument, file, or stdin.
func readProblem(args []string, fromFile string, stdin io.Reader) (string, error) {
	var text string
	switch {
	case fromFile != "":
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read problem file: %w", err)
		}
		text = string(data)
	case len(args) > 0:
		text = args[0]
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read problem from stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("problem statement must not be empty")
	}
	return text, nil
}

func runSolve(problem, language string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	start := time.Now()
	solution, err := app.coach.Solve(ctx, problem, language)
	if err != nil {
		return err
	}
	if app.tracker != nil {
		app.tracker.Track(learning.NewQueryEvent(learning.KindSolve, problem, 1, time.Since(start)))
	}

	fmt.Printf("Problem:  %s\n", solution.ProblemID)
	fmt.Printf("Solution: %s\n", solution.SolutionID)
	fmt.Printf("Features: type=%s difficulty=%s\n\n", solution.Features.ProblemType, solution.Features.Difficulty)

	if solution.Code != "" {
		fmt.Printf("```%s\n%s\n```\n\n", language, solution.Code)
	} else {
		fmt.Println("No code block found in the model response; full reasoning follows.")
	}

	fmt.Println("Reasoning:")
	fmt.Println(solution.Reasoning)
	fmt.Printf("\nRate it: codecoach feedback %s --positive|--negative [--comment \"...\"]\n", solution.SolutionID)
	return nil
}
