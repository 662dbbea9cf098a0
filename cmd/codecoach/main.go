/*
Package main is the entry point for the codecoach CLI.

codecoach is a retrieval-augmented coding coach: it generates solutions for
programming problems with chain-of-thought prompting, enriched by a local
knowledge base of algorithms and data structures and by lessons learned from
feedback on previously solved problems.

Usage:
  codecoach [command]

Available Commands:
  serve       Run the MCP server (stdio transport)
  solve       Generate a solution for a coding problem
  feedback    Record feedback on a generated solution
  stats       Show feedback store statistics
  knowledge   Browse and search the knowledge base
  history     Inspect and manage query analytics
  benchmark   Estimate the token cost of prompt enrichment
  version     Show version information

Examples:
  # Solve a problem
  codecoach solve "Reverse a linked list" --language go

  # Rate the result
  codecoach feedback <solution-id> --positive --comment "clean"

  # Run as MCP server
  codecoach serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vuhm/codecoach/internal/cli"
	"github.com/vuhm/codecoach/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codecoach",
		Short: "Retrieval-augmented coding coach that learns from your feedback",
		Long: `codecoach generates code solutions with chain-of-thought reasoning.

Each solve retrieves relevant entries from a local knowledge base of
algorithms and data structures, and weaves in dos and don'ts learned from
feedback on similar problems you solved before. The more feedback you give,
the better the prompts get.

Models run locally through Ollama; nothing leaves your machine.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewSolveCmd())
	rootCmd.AddCommand(cli.NewFeedbackCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())
	rootCmd.AddCommand(cli.NewKnowledgeCmd())
	rootCmd.AddCommand(cli.NewHistoryCmd())
	rootCmd.AddCommand(cli.NewBenchmarkCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
