// Package ollama provides an embedding backend using a local Ollama
// instance.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quarry-labs/corrag/internal/core/ports/driven"
)

// Ensure EmbeddingBackend implements the interface.
var _ driven.EmbeddingBackend = (*EmbeddingBackend)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "nomic-embed-text"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Ollama embedding backend.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// EmbeddingBackend generates embeddings using Ollama's
// /api/embeddings endpoint.
type EmbeddingBackend struct {
	client  *http.Client
	baseURL string
}

// embedRequest is the Ollama API request format.
type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embedResponse is the Ollama API response format.
type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// NewEmbeddingBackend creates a new Ollama embedding backend.
func NewEmbeddingBackend(cfg Config) *EmbeddingBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &EmbeddingBackend{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Embed generates a vector embedding for the given text. An empty
// model falls back to DefaultModel; hosted gateway model ids like
// "openai/text-embedding-ada-002" will simply 404 here and let the
// provider try the next configured model.
func (b *EmbeddingBackend) Embed(ctx context.Context, text, model string) ([]float32, error) {
	if model == "" {
		model = DefaultModel
	}

	jsonBody, err := json.Marshal(embedRequest{
		Model:  model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.baseURL+"/api/embeddings",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	embedding := make([]float32, len(embedResp.Embedding))
	for i, v := range embedResp.Embedding {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// Ping validates the service is reachable by checking the /api/tags
// endpoint without running inference.
func (b *EmbeddingBackend) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (b *EmbeddingBackend) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
