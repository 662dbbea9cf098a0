package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuhm/codecoach/internal/benchmark"
	"github.com/vuhm/codecoach/internal/prompt"
)

// NewBenchmarkCmd creates the 'benchmark' command.
func NewBenchmarkCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "benchmark [problem]",
		Short: "Estimate the token cost of prompt enrichment",
		Long: `Compare the token cost of sending a problem as-is against the
chain-of-thought prompt with retrieved knowledge and feedback guidance.

The problem statement is taken from the argument or stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := readProblem(args, "", cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runBenchmark(problem, language)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "python", "Target language for the prompt")
	return cmd
}

func runBenchmark(problem, language string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	features := app.client.ExtractFeatures(ctx, problem)

	knowledge, err := app.retriever.Retrieve(ctx, problem, app.cfg.Retrieval.TopK)
	if err != nil {
		knowledge = nil
	}

	history := prompt.NewEnhancer(app.store).HistorySection(features)

	result := benchmark.Run(problem, features, knowledge, history, language)
	fmt.Print(benchmark.FormatResult(result))
	return nil
}
