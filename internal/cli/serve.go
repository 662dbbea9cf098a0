package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vuhm/codecoach/internal/mcp"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the codecoach server using stdio transport.

This server exposes 5 meta-tools to AI clients:
  • coach_solve     - Generate a solution for a coding problem
  • coach_feedback  - Record a verdict on a generated solution
  • coach_search    - Hybrid search over the knowledge base
  • coach_stats     - Feedback store statistics
  • coach_knowledge - Browse knowledge entries`,
		Example: `  # Run directly
  codecoach serve

  # Add to Claude Code
  claude mcp add codecoach -- codecoach serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// runServe starts the MCP server with stdio transport and signal handling.
func runServe() error {
	app, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer app.Close()

	server := mcp.NewServer(app.coach, app.hybrid, app.store, app.catalog, app.tracker)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down gracefully...", sig)
		return nil

	case err := <-errChan:
		// Run returned: stdin closed or transport error.
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
