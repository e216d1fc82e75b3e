// Package ai provides factory functions for creating AI backend
// adapters from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/quarry-labs/corrag/internal/adapters/driven/embedding/ollama"
	openrouterembed "github.com/quarry-labs/corrag/internal/adapters/driven/embedding/openrouter"
	ollamallm "github.com/quarry-labs/corrag/internal/adapters/driven/llm/ollama"
	openrouterllm "github.com/quarry-labs/corrag/internal/adapters/driven/llm/openrouter"
	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for backend connectivity
// validation.
const pingTimeout = 5 * time.Second

// Attribution headers sent to OpenRouter.
const (
	openRouterReferer = "https://github.com/quarry-labs/corrag"
	openRouterTitle   = "corrag"
)

// CreateAndValidateEmbeddingBackend creates an embedding backend and
// validates connectivity. An unconfigured backend returns (nil, nil):
// the engine then runs on the local fallback embedding.
func CreateAndValidateEmbeddingBackend(settings *domain.EmbeddingSettings) (driven.EmbeddingBackend, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	backend, err := CreateEmbeddingBackend(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'corrag settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}
	if backend == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		backend.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'corrag settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return backend, nil
}

// CreateAndValidateCompletionBackend creates a completion backend and
// validates connectivity. An unconfigured backend returns (nil, nil):
// evaluation then falls back to the similarity heuristic and
// correction is skipped.
func CreateAndValidateCompletionBackend(settings *domain.LLMSettings) (driven.CompletionBackend, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	backend, err := CreateCompletionBackend(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'corrag settings' to fix",
			domain.ErrLLMUnavailable, err)
	}
	if backend == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		backend.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'corrag settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return backend, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by
// creating a backend and pinging it. Used by the settings command to
// validate credentials on entry.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	backend, err := CreateEmbeddingBackend(settings)
	if err != nil {
		return err
	}
	if backend == nil {
		return nil
	}
	defer backend.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return backend.Ping(ctx)
}

// ValidateLLMConfig validates a completion configuration by creating
// a backend and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	backend, err := CreateCompletionBackend(settings)
	if err != nil {
		return err
	}
	if backend == nil {
		return nil
	}
	defer backend.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return backend.Ping(ctx)
}

// CreateEmbeddingBackend creates the appropriate embedding backend
// based on settings. Returns nil if the provider is not configured.
func CreateEmbeddingBackend(settings *domain.EmbeddingSettings) (driven.EmbeddingBackend, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingBackend(ollamaembed.Config{
			BaseURL: settings.BaseURL,
		}), nil

	case domain.AIProviderOpenRouter:
		return openrouterembed.NewEmbeddingBackend(openrouterembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Referer: openRouterReferer,
			Title:   openRouterTitle,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateCompletionBackend creates the appropriate completion backend
// based on settings. Returns nil if the provider is not configured.
func CreateCompletionBackend(settings *domain.LLMSettings) (driven.CompletionBackend, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewCompletionBackend(ollamallm.Config{
			BaseURL: settings.BaseURL,
		}), nil

	case domain.AIProviderOpenRouter:
		return openrouterllm.NewCompletionBackend(openrouterllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Referer: openRouterReferer,
			Title:   openRouterTitle,
		})

	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", settings.Provider)
	}
}
