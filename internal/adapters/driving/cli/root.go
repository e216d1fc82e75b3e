// Package cli implements the corrag command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quarry-labs/corrag/internal/adapters/driven/config/file"
	"github.com/quarry-labs/corrag/internal/core/ports/driving"
	"github.com/quarry-labs/corrag/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	cragService     driving.CRAGService
	documentService driving.DocumentService
	settingsStore   *file.SettingsStore
	promptStore     *file.PromptStore
)

var verbose bool

// correctionDefault is whether the corrective stage runs when the
// query command is invoked without --no-correction. Set from the
// persisted settings by the composition root.
var correctionDefault = true

var rootCmd = &cobra.Command{
	Use:   "corrag",
	Short: "Corrective retrieval-augmented generation engine",
	Long: `corrag retrieves documents from a local knowledge base, evaluates
their relevance with an LLM, and corrects the query when retrieval
misses. Works fully offline with deterministic fallback embeddings;
configure OpenRouter or Ollama for real models.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// SetServices injects the wired services. Must be called before
// Execute.
func SetServices(
	crag driving.CRAGService,
	document driving.DocumentService,
	settings *file.SettingsStore,
	prompts *file.PromptStore,
) {
	cragService = crag
	documentService = document
	settingsStore = settings
	promptStore = prompts
}

// SetCorrectionDefault sets whether queries run the corrective stage
// unless --no-correction is passed.
func SetCorrectionDefault(enabled bool) {
	correctionDefault = enabled
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
