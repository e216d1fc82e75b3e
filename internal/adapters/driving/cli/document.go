package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage the shared knowledge base",
	Long:  `Add, list, delete, or clear documents in the shared collection.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Embed and store a document",
	Long: `Embeds the given text and stores it in the shared collection.
Pass --file to read the content from a file instead. Reusing an ID
replaces the existing document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all shared documents",
	Long:  `Removes every shared document and drops the embedding cache. Personal collections are untouched.`,
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

var documentCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentCount,
}

var (
	documentAddID   string
	documentAddFile string
)

func init() {
	documentAddCmd.Flags().StringVar(&documentAddID, "id", "", "document identifier (generated when omitted)")
	documentAddCmd.Flags().StringVarP(&documentAddFile, "file", "f", "", "read document content from a file")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentClearCmd)
	documentCmd.AddCommand(documentCountCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	var text string
	var metadata map[string]any

	switch {
	case documentAddFile != "":
		data, err := os.ReadFile(documentAddFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		text = string(data)
		metadata = map[string]any{"source": documentAddFile}
	case len(args) == 1:
		text = args[0]
	default:
		return errors.New("provide document text or --file")
	}

	ctx := context.Background()
	id, err := documentService.Store(ctx, documentAddID, text, metadata)
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	cmd.Printf("Stored document %s\n", id)
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	previews, err := documentService.ListPreview(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(previews) == 0 {
		cmd.Println("No documents stored.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range previews {
		cmd.Printf("  %s\n", previews[i].DocID)
		if previews[i].Title != "" {
			cmd.Printf("    Title: %s\n", previews[i].Title)
		}
		cmd.Printf("    %s\n", previews[i].Preview)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(previews))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	deleted, err := documentService.Delete(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if !deleted {
		cmd.Printf("Document %s not found.\n", args[0])
		return nil
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	if err := documentService.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	cmd.Println("Knowledge base cleared.")
	return nil
}

func runDocumentCount(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	count, err := documentService.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	cmd.Printf("%d documents\n", count)
	return nil
}
