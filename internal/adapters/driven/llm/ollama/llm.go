// Package ollama provides a completion backend using a local Ollama
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

// Ensure CompletionBackend implements the interface.
var _ driven.CompletionBackend = (*CompletionBackend)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Ollama completion backend.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Timeout is the request timeout (default: 60s, local models are
	// slow on first token).
	Timeout time.Duration
}

// CompletionBackend generates completions using Ollama's /api/generate
// endpoint.
type CompletionBackend struct {
	client  *http.Client
	baseURL string
}

// generateRequest is the Ollama API request format.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the Ollama API response format.
type generateResponse struct {
	Response string `json:"response"`
}

// NewCompletionBackend creates a new Ollama completion backend.
func NewCompletionBackend(cfg Config) *CompletionBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &CompletionBackend{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Complete sends the prompt and returns the model's reply text.
// An empty model falls back to DefaultModel.
func (b *CompletionBackend) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = DefaultModel
	}

	jsonBody, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return genResp.Response, nil
}

// Ping validates the service is reachable by checking the /api/tags
// endpoint.
func (b *CompletionBackend) Ping(ctx context.Context) error {
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
func (b *CompletionBackend) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
