// Command corrag is a corrective retrieval-augmented generation engine
// over a local knowledge base, exposed as a CLI and an MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/quarry-labs/corrag/internal/adapters/driven/ai"
	memorycache "github.com/quarry-labs/corrag/internal/adapters/driven/cache/memory"
	"github.com/quarry-labs/corrag/internal/adapters/driven/config/file"
	memorystore "github.com/quarry-labs/corrag/internal/adapters/driven/storage/memory"
	"github.com/quarry-labs/corrag/internal/adapters/driven/storage/sqlite"
	"github.com/quarry-labs/corrag/internal/adapters/driving/cli"
	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/core/services"
	"github.com/quarry-labs/corrag/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env file for API keys
	godotenv.Load() //nolint:errcheck

	settingsStore, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("initialising settings store: %w", err)
	}

	settings, err := settingsStore.Load()
	if err != nil {
		logger.Warn("failed to load settings, using defaults: %v", err)
		settings = domain.DefaultAppSettings()
	}
	applyEnvOverrides(&settings)

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("initialising prompt store: %w", err)
	}

	// Backends are optional. On any failure the engine degrades to the
	// local fallback embedding and the similarity heuristic.
	embedBackend, err := ai.CreateAndValidateEmbeddingBackend(&settings.Embedding)
	if err != nil {
		logger.Warn("%v", err)
		embedBackend = nil
	}
	llmBackend, err := ai.CreateAndValidateCompletionBackend(&settings.LLM)
	if err != nil {
		logger.Warn("%v", err)
		llmBackend = nil
	}
	defer func() {
		if embedBackend != nil {
			embedBackend.Close()
		}
		if llmBackend != nil {
			llmBackend.Close()
		}
	}()

	var docStore driven.DocumentStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("failed to open knowledge base, documents will not persist: %v", err)
		docStore = memorystore.NewDocumentStore()
	} else {
		defer store.Close()
		docStore = store.DocumentStore()
	}

	embedCache := memorycache.NewEmbeddingCache()
	embedder := services.NewEmbeddingProvider(embedBackend, embedCache, nil, settings.Embedding.Models)
	retriever := services.NewRetriever(docStore, embedder)
	evaluator := services.NewRelevanceEvaluator(llmBackend, promptStore, settings.LLM.Model)
	corrector := services.NewQueryCorrector(llmBackend, promptStore, retriever, settings.LLM.Model)
	orchestrator := services.NewCRAGOrchestrator(retriever, evaluator, corrector)
	documents := services.NewDocumentManager(docStore, embedCache, embedder)

	cli.SetVersion(version)
	cli.SetCorrectionDefault(settings.EnableCorrection)
	cli.SetServices(orchestrator, documents, settingsStore, promptStore)

	return cli.Execute()
}

// applyEnvOverrides lets environment variables stand in for persisted
// credentials, so the binary works without a config file.
func applyEnvOverrides(settings *domain.AppSettings) {
	key := os.Getenv("OPENROUTER_API_KEY")
	if key == "" {
		return
	}

	if !settings.Embedding.Provider.IsValid() {
		settings.Embedding.Provider = domain.AIProviderOpenRouter
	}
	if settings.Embedding.Provider == domain.AIProviderOpenRouter && settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = key
	}

	if !settings.LLM.Provider.IsValid() {
		settings.LLM.Provider = domain.AIProviderOpenRouter
	}
	if settings.LLM.Provider == domain.AIProviderOpenRouter && settings.LLM.APIKey == "" {
		settings.LLM.APIKey = key
	}
}
