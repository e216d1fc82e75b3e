package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

var personalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Manage per-user personal collections",
	Long:  `Store and search documents scoped to a single user, kept separate from the shared knowledge base.`,
}

var personalAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Store a personal document",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonalAdd,
}

var personalSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a personal collection by similarity",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonalSearch,
}

var (
	personalUser  string
	personalTitle string
	personalLimit int
)

func init() {
	personalCmd.PersistentFlags().StringVarP(&personalUser, "user", "u", "", "user identifier (required)")
	personalAddCmd.Flags().StringVar(&personalTitle, "title", "", "document title")
	personalSearchCmd.Flags().IntVarP(&personalLimit, "limit", "n", domain.DefaultPersonalTopK, "maximum number of results")

	personalCmd.AddCommand(personalAddCmd)
	personalCmd.AddCommand(personalSearchCmd)
	rootCmd.AddCommand(personalCmd)
}

func runPersonalAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if personalUser == "" {
		return errors.New("--user is required")
	}

	ctx := context.Background()
	id, err := documentService.StorePersonal(ctx, personalUser, personalTitle, args[0], nil)
	if err != nil {
		return fmt.Errorf("failed to store personal document: %w", err)
	}

	cmd.Printf("Stored personal document %s for %s\n", id, personalUser)
	return nil
}

func runPersonalSearch(cmd *cobra.Command, args []string) error {
	if cragService == nil {
		return errors.New("crag service not configured")
	}
	if personalUser == "" {
		return errors.New("--user is required")
	}

	ctx := context.Background()
	results, err := cragService.SearchPersonal(ctx, personalUser, args[0], personalLimit)
	if err != nil {
		return fmt.Errorf("personal search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = results[i].DocID
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Similarity)
		cmd.Printf("      %s\n", results[i].Text)
		cmd.Println()
	}

	return nil
}
