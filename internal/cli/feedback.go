package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewFeedbackCmd creates the 'feedback' command.
func NewFeedbackCmd() *cobra.Command {
	var positive bool
	var negative bool
	var comment string

	cmd := &cobra.Command{
		Use:   "feedback <solution-id>",
		Short: "Record feedback on a generated solution",
		Long: `Record a verdict on a solution produced by 'codecoach solve'.

Comments on solved problems feed future generations: they are surfaced as
dos and don'ts when similar problems come up.`,
		Example: `  codecoach feedback abc123_s1 --positive --comment "Clean two-pointer approach"
  codecoach feedback abc123_s1 --negative --comment "Missed the empty input case"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if positive == negative {
				return fmt.Errorf("exactly one of --positive or --negative is required")
			}
			return runFeedback(args[0], positive, comment)
		},
	}

	cmd.Flags().BoolVar(&positive, "positive", false, "Mark the solution as good")
	cmd.Flags().BoolVar(&negative, "negative", false, "Mark the solution as bad")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "What was good or bad about it")
	return cmd
}

func runFeedback(solutionID string, positive bool, comment string) error {
	app, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := app.store.GetSolution(solutionID); err != nil {
		return fmt.Errorf("looking up solution: %w", err)
	}

	feedbackID, err := app.store.AddFeedback(solutionID, positive, comment)
	if err != nil {
		return fmt.Errorf("recording feedback: %w", err)
	}

	verdict := "negative"
	if positive {
		verdict = "positive"
	}
	fmt.Printf("Recorded %s feedback %s for solution %s.\n", verdict, feedbackID, solutionID)
	return nil
}
