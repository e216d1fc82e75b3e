package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or
// completions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenRouter is the OpenRouter cloud API
	// (OpenAI-compatible, fronts many models).
	AIProviderOpenRouter AIProvider = "openrouter"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenRouter, AIProviderOllama:
		return true
	default:
		return false
	}
}

// AllAIProviders returns every recognised provider, in the order they
// are offered for selection.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderOpenRouter, AIProviderOllama}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenRouter
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenRouter:
		return "OpenRouter (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// DefaultEmbeddingModels is the ordered list of embedding model
// identifiers tried against the backend, first success wins. Hosted
// gateways are inconsistent about provider-prefixed names, hence the
// duplicated bare forms.
func DefaultEmbeddingModels() []string {
	return []string{
		"openai/text-embedding-ada-002",
		"text-embedding-ada-002",
		"openai/text-embedding-3-small",
		"text-embedding-3-small",
	}
}

// DefaultCompletionModel is the completion model used for relevance
// evaluation and query refinement when none is configured.
const DefaultCompletionModel = "google/gemini-2.0-flash-exp:free"

// EmbeddingSettings holds embedding backend configuration.
type EmbeddingSettings struct {
	// Provider is the embedding backend provider.
	Provider AIProvider

	// Models is the ordered list of model identifiers to try.
	// Empty means DefaultEmbeddingModels.
	Models []string

	// BaseURL is the API endpoint (for Ollama, or an OpenRouter
	// compatible gateway).
	BaseURL string

	// APIKey is the API key (for OpenRouter).
	APIKey string
}

// IsConfigured returns true if the embedding backend is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ModelList returns the configured model list or the defaults.
func (e EmbeddingSettings) ModelList() []string {
	if len(e.Models) > 0 {
		return e.Models
	}
	return DefaultEmbeddingModels()
}

// LLMSettings holds completion backend configuration.
type LLMSettings struct {
	// Provider is the completion backend provider.
	Provider AIProvider

	// Model is the completion model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenRouter).
	APIKey string
}

// IsConfigured returns true if the completion backend is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ModelName returns the configured model or the default.
func (l LLMSettings) ModelName() string {
	if l.Model != "" {
		return l.Model
	}
	return DefaultCompletionModel
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding backend settings.
	Embedding EmbeddingSettings

	// LLM holds completion backend settings.
	LLM LLMSettings

	// EnableCorrection toggles the corrective retrieval stage.
	EnableCorrection bool
}

// DefaultAppSettings returns settings with sensible defaults.
// Backends are left unconfigured; the engine still works with the
// deterministic fallback embedding and heuristic evaluation.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding:        EmbeddingSettings{},
		LLM:              LLMSettings{},
		EnableCorrection: true,
	}
}
