package driven

import "context"

// EmbeddingBackend generates vector embeddings from text.
// This is an optional service - when nil, the deterministic local
// fallback embedding is used instead.
//
// Unlike a fixed-model embedding client, the model identifier is
// passed per call: the embedding provider walks an ordered list of
// model ids until one succeeds, because hosted gateways are
// inconsistent about model naming.
//
// Implementations may include:
//   - OpenRouter (OpenAI-compatible /embeddings endpoint)
//   - Ollama (local /api/embeddings endpoint)
type EmbeddingBackend interface {
	// Embed generates a vector embedding for the given text using the
	// given model identifier.
	Embed(ctx context.Context, text string, model string) ([]float32, error)

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a backend.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingCache is a process-lifetime cache of text-key to embedding
// vector. Value computation is idempotent (same text, same vector), so
// concurrent writers racing on a key are benign: last writer wins with
// an equivalent value.
type EmbeddingCache interface {
	// Get returns the cached vector for the key, if present.
	Get(key string) ([]float32, bool)

	// Put stores a vector under the key.
	Put(key string, embedding []float32)

	// Clear drops every entry. Tied to the document-management
	// "clear all" operation.
	Clear()

	// Len returns the number of cached entries.
	Len() int
}
