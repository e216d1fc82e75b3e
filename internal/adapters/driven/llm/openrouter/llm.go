// Package openrouter provides a completion backend using the
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

// Ensure CompletionBackend implements the interface.
var _ driven.CompletionBackend = (*CompletionBackend)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond caps outbound request rate for
	// free-tier keys.
	DefaultRequestsPerSecond = 1
)

// Config holds configuration for the OpenRouter completion backend.
type Config struct {
	// APIKey is the OpenRouter API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://openrouter.ai/api/v1).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond limits the outbound request rate
	// (default: 1). Zero uses the default; negative disables limiting.
	RequestsPerSecond float64

	// Referer and Title are forwarded as the HTTP-Referer and X-Title
	// attribution headers OpenRouter asks clients to send.
	Referer string
	Title   string
}

// CompletionBackend generates completions through OpenRouter's
// OpenAI-compatible /chat/completions endpoint.
type CompletionBackend struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	referer string
	title   string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// NewCompletionBackend creates a new OpenRouter completion backend.
func NewCompletionBackend(cfg Config) (*CompletionBackend, error) {
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

	return &CompletionBackend{
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

// Complete sends the prompt as a single user message and returns the
// model's reply text.
func (b *CompletionBackend) Complete(ctx context.Context, prompt, model string) (string, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	jsonBody, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	b.setHeaders(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openrouter error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Ping validates the service is reachable by checking the /models
// endpoint.
func (b *CompletionBackend) Ping(ctx context.Context) error {
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
func (b *CompletionBackend) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

func (b *CompletionBackend) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	if b.referer != "" {
		req.Header.Set("HTTP-Referer", b.referer)
	}
	if b.title != "" {
		req.Header.Set("X-Title", b.title)
	}
}
