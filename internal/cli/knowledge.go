package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuhm/codecoach/internal/knowledge"
	"github.com/vuhm/codecoach/internal/learning"
	"github.com/vuhm/codecoach/internal/retrieval"
)

// NewKnowledgeCmd creates the 'knowledge' command group.
func NewKnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Browse and search the algorithm knowledge base",
	}

	cmd.AddCommand(newKnowledgeListCmd())
	cmd.AddCommand(newKnowledgeShowCmd())
	cmd.AddCommand(newKnowledgeSearchCmd())
	cmd.AddCommand(newKnowledgeReindexCmd())
	return cmd
}

func newKnowledgeListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			categories := []string{knowledge.CategoryAlgorithms, knowledge.CategoryDataStructures}
			if category != "" {
				categories = []string{category}
			}

			for _, cat := range categories {
				items := app.catalog.Items(cat)
				fmt.Printf("%s (%d):\n", cat, len(items))
				for _, entry := range items {
					fmt.Printf("  • %s (%s): %s\n", entry.Name, entry.ID, entry.Description)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "",
		fmt.Sprintf("Limit to one category (%s or %s)", knowledge.CategoryAlgorithms, knowledge.CategoryDataStructures))
	return cmd
}

func newKnowledgeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one knowledge entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			entry, ok := app.catalog.ItemByID(args[0])
			if !ok {
				return fmt.Errorf("knowledge entry '%s' not found", args[0])
			}

			fmt.Printf("%s (%s)\n", entry.Name, entry.ID)
			fmt.Printf("Category:    %s\n", entry.Category)
			fmt.Printf("Description: %s\n", entry.Description)
			if entry.Complexity != "" {
				fmt.Printf("Complexity:  %s\n", entry.Complexity)
			}
			if len(entry.Applications) > 0 {
				fmt.Printf("Applications: %s\n", strings.Join(entry.Applications, ", "))
			}
			if len(entry.Keywords) > 0 {
				fmt.Printf("Keywords:    %s\n", strings.Join(entry.Keywords, ", "))
			}
			if entry.Example != "" {
				fmt.Printf("\nExample:\n%s\n", entry.Example)
			}
			return nil
		},
	}
}

func newKnowledgeSearchCmd() *cobra.Command {
	var limit int
	var keywordOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search knowledge entries with hybrid semantic + keyword matching.

With --keyword-only the embedding side is skipped, which works without a
running Ollama instance.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			query := strings.Join(args, " ")

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			var results []retrieval.Result
			if keywordOnly {
				results, err = app.keyword.Search(query, limit)
			} else {
				results, err = app.hybrid.Search(ctx, query, limit)
			}
			if err != nil {
				return fmt.Errorf("searching knowledge base: %w", err)
			}
			if app.tracker != nil {
				app.tracker.Track(learning.NewQueryEvent(learning.KindSearch, query, len(results), 0))
			}

			if len(results) == 0 {
				fmt.Printf("No knowledge entries match %q.\n", query)
				return nil
			}

			fmt.Printf("Knowledge entries for %q:\n\n", query)
			for _, r := range results {
				fmt.Printf("  • %s (%s, score %.3f): %s\n", r.Entry.Name, r.Entry.ID, r.Score, r.Entry.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum results")
	cmd.Flags().BoolVar(&keywordOnly, "keyword-only", false, "Skip semantic search")
	return cmd
}

func newKnowledgeReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the semantic knowledge index",
		Long: `Re-embed every knowledge entry and rewrite the on-disk index.

Run this after editing the knowledge catalog files or switching the
embedding model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.retriever.Rebuild(ctx, app.catalog); err != nil {
				return fmt.Errorf("rebuilding index: %w", err)
			}

			count := app.retriever.Count()
			if count == 0 {
				fmt.Println("Index rebuilt empty. Is Ollama running and the embed model pulled?")
				return nil
			}
			fmt.Printf("Indexed %d knowledge entries.\n", count)
			return nil
		},
	}
}
