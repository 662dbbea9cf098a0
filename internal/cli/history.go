package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the 'history' command group for query analytics.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage query analytics",
	}

	cmd.AddCommand(newHistoryStatusCmd())
	cmd.AddCommand(newHistoryClearCmd())
	cmd.AddCommand(newHistoryDisableCmd())
	return cmd
}

func newHistoryStatusCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent query activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			since := time.Now().AddDate(0, 0, -days)
			records, err := app.store.QueryHistory(since)
			if err != nil {
				return fmt.Errorf("reading query history: %w", err)
			}

			fmt.Println("Query analytics")
			fmt.Println("===============")
			fmt.Printf("Tracking enabled: %v\n", app.cfg.Analytics.Enabled)
			fmt.Printf("Window:           last %d days\n", days)
			fmt.Printf("Queries recorded: %d\n", len(records))

			if len(records) == 0 {
				return nil
			}

			byKind := make(map[string]int)
			var totalMs int64
			for _, rec := range records {
				byKind[rec.Kind]++
				totalMs += rec.DurationMs
			}

			fmt.Println("\nBy kind:")
			for kind, count := range byKind {
				fmt.Printf("  %-10s %d\n", kind, count)
			}
			fmt.Printf("\nAverage duration: %dms\n", totalMs/int64(len(records)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "How many days back to report")
	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded query history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Print("This will delete all query history. Continue? (y/N): ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")
					return nil
				}
			}

			app, err := newApp(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.store.ClearQueryHistory(); err != nil {
				return fmt.Errorf("clearing query history: %w", err)
			}

			fmt.Println("Query history cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newHistoryDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Turn off query tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("To disable tracking, edit ~/.codecoach.json:")
			fmt.Println(`  "analytics": {"enabled": false}`)
			return nil
		},
	}
}
