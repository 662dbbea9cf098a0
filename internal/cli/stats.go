package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the 'stats' command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show feedback store statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	app, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer app.Close()

	stats := app.store.Statistics()

	fmt.Println("Feedback store statistics")
	fmt.Println("=========================")
	fmt.Printf("Problems:      %d\n", stats.TotalProblems)
	fmt.Printf("Solutions:     %d\n", stats.TotalSolutions)
	fmt.Printf("Feedback:      %d\n", stats.TotalFeedback)
	fmt.Printf("Positive rate: %.1f%%\n", stats.PositiveRate*100)
	fmt.Printf("\nKnowledge entries indexed: %d\n", app.retriever.Count())
	return nil
}
