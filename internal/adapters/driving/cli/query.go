package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

var (
	queryNoCorrection bool
	queryJSON         bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Run corrective retrieval over the knowledge base",
	Long: `Retrieves the most similar documents, evaluates their relevance with
an LLM, and refines the query for a second retrieval pass when the
first one misses. Prints the assembled context and the evaluation.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryNoCorrection, "no-correction", false, "skip the corrective re-retrieval stage")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if cragService == nil {
		return errors.New("crag service not configured")
	}

	ctx := context.Background()
	result := cragService.PerformCRAG(ctx, args[0], correctionDefault && !queryNoCorrection)

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}

	return outputQueryText(cmd, result)
}

func outputQueryJSON(cmd *cobra.Command, result domain.CRAGResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, result domain.CRAGResult) error {
	cmd.Printf("Query: %s\n", result.OriginalQuery)
	if result.Corrected {
		cmd.Printf("Refined: %s\n", result.RefinedQuery)
	}
	cmd.Printf("Relevant: %t (%.2f) - %s\n", result.Evaluation.IsRelevant, result.Evaluation.Score, result.Evaluation.Reason)
	cmd.Println()

	if len(result.Documents) == 0 {
		cmd.Println("No documents retrieved.")
		return nil
	}

	cmd.Println("Documents:")
	for i := range result.Documents {
		title := result.Documents[i].Title
		if title == "" {
			title = result.Documents[i].DocID
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, result.Documents[i].Similarity)
	}
	cmd.Println()
	cmd.Println("Context:")
	cmd.Println(result.Context)

	return nil
}
