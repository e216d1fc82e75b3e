// Package openrouter provides an embedding backend using the
// OpenRouter API gateway.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/quarry-labs/corrag/internal/core/ports/driven"
)

// Ensure EmbeddingBackend implements the interface.
var _ driven.EmbeddingBackend = (*EmbeddingBackend)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond caps outbound request rate. Free-tier
	// OpenRouter keys throttle aggressively; the model retry walk in
	// the embedding provider multiplies request volume.
	DefaultRequestsPerSecond = 2
)

// Config holds configuration for the OpenRouter embedding backend.
type Config struct {
	// APIKey is the OpenRouter API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://openrouter.ai/api/v1).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond limits the outbound request rate
	// (default: 2). Zero uses the default; negative disables limiting.
	RequestsPerSecond float64

	// Referer and Title are forwarded as the HTTP-Referer and X-Title
	// attribution headers OpenRouter asks clients to send.
	Referer string
	Title   string
}

// EmbeddingBackend generates embeddings through OpenRouter's
// OpenAI-compatible /embeddings endpoint. The model identifier is
// passed per call.
type EmbeddingBackend struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	referer string
	title   string
}

// embeddingRequest is the OpenAI-compatible request format.
type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embeddingResponse covers the object response shapes OpenRouter's
// upstream providers produce for /embeddings. Most return the OpenAI
// data array; some proxy targets return a bare "embedding" field. A
// third shape, the vector as the entire body, is handled in Embed.
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Embedding []float64 `json:"embedding"`
	Error     *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// NewEmbeddingBackend creates a new OpenRouter embedding backend.
func NewEmbeddingBackend(cfg Config) (*EmbeddingBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	switch {
	case cfg.RequestsPerSecond == 0:
		limiter = rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1)
	case cfg.RequestsPerSecond > 0:
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &EmbeddingBackend{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		referer: cfg.Referer,
		title:   cfg.Title,
	}, nil
}

// Embed generates a vector embedding for the given text using the
// given model identifier.
func (b *EmbeddingBackend) Embed(ctx context.Context, text, model string) ([]float32, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	jsonBody, err := json.Marshal(embeddingRequest{
		Model: model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.baseURL+"/embeddings",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	b.setHeaders(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var embedResp embeddingResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		// Third shape: some proxy targets return the bare vector as
		// the response body.
		var raw []float64
		if json.Unmarshal(body, &raw) != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		embedResp.Embedding = raw
	}

	if embedResp.Error != nil {
		return nil, fmt.Errorf("openrouter error: %s", embedResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openrouter error (status %d): %s", resp.StatusCode, string(body))
	}

	raw := embedResp.Embedding
	if len(embedResp.Data) > 0 {
		raw = embedResp.Data[0].Embedding
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("openrouter: no embedding in response")
	}

	embedding := make([]float32, len(raw))
	for i, v := range raw {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// Ping validates the service is reachable by checking the /models
// endpoint. This validates the API key without running inference.
func (b *EmbeddingBackend) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openrouter: failed to create ping request: %w", err)
	}
	b.setHeaders(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("openrouter: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openrouter: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openrouter: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (b *EmbeddingBackend) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

func (b *EmbeddingBackend) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	if b.referer != "" {
		req.Header.Set("HTTP-Referer", b.referer)
	}
	if b.title != "" {
		req.Header.Set("X-Title", b.title)
	}
}
