package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"strings"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/logger"
)

const (
	// maxEmbedChars is the truncation limit applied to text before it
	// is sent to the embedding backend. Only the embedding input is
	// truncated; stored text never is.
	maxEmbedChars = 8000

	// FallbackDimensions is the vector size of the deterministic
	// local embedding.
	FallbackDimensions = 384

	// legacyPrefixLength is the key length used by PrefixKey.
	legacyPrefixLength = 100
)

// KeyFunc derives a cache key from embedding input text.
type KeyFunc func(text string) string

// HashKey keys the cache by a SHA-256 digest of the full text.
// This is the default: two texts collide only if they are identical.
func HashKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// PrefixKey keys the cache by the first 100 characters of the text.
// This key is NOT collision-free: two long texts sharing a prefix
// return each other's vectors. It exists only for byte-compatibility
// with stores populated by earlier versions; prefer HashKey.
func PrefixKey(text string) string {
	if len(text) > legacyPrefixLength {
		return text[:legacyPrefixLength]
	}
	return text
}

// EmbeddingProvider turns text into a fixed-length vector.
// It consults the cache first, then walks an ordered list of model
// identifiers against the backend, and falls back to a deterministic
// local embedding when the backend is missing or exhausted.
type EmbeddingProvider struct {
	backend driven.EmbeddingBackend // optional
	cache   driven.EmbeddingCache
	keyFn   KeyFunc
	models  []string
}

// NewEmbeddingProvider creates an embedding provider.
// backend may be nil; the local fallback then handles everything.
// A nil keyFn defaults to HashKey; an empty model list defaults to
// domain.DefaultEmbeddingModels.
func NewEmbeddingProvider(
	backend driven.EmbeddingBackend,
	cache driven.EmbeddingCache,
	keyFn KeyFunc,
	models []string,
) *EmbeddingProvider {
	if keyFn == nil {
		keyFn = HashKey
	}
	if len(models) == 0 {
		models = domain.DefaultEmbeddingModels()
	}
	return &EmbeddingProvider{
		backend: backend,
		cache:   cache,
		keyFn:   keyFn,
		models:  models,
	}
}

// Generate produces an embedding vector for the given text.
// Blank text fails with domain.ErrEmptyInput. Backend failures never
// propagate: the provider degrades to the deterministic fallback.
func (p *EmbeddingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	key := p.keyFn(text)
	if cached, ok := p.cache.Get(key); ok {
		logger.Debug("Embedding cache hit (key=%s...)", shortKey(key))
		return cached, nil
	}

	embedding := p.remoteEmbedding(ctx, text)
	if embedding == nil {
		logger.Debug("Using deterministic fallback embedding")
		embedding = FallbackEmbedding(text)
	}

	p.cache.Put(key, embedding)
	return embedding, nil
}

// remoteEmbedding tries each configured model identifier once against
// the backend, in order. Returns nil when the backend is missing or
// every model fails.
func (p *EmbeddingProvider) remoteEmbedding(ctx context.Context, text string) []float32 {
	if p.backend == nil {
		return nil
	}

	truncated := text
	if len(truncated) > maxEmbedChars {
		truncated = truncated[:maxEmbedChars]
		logger.Debug("Truncated embedding input to %d chars", maxEmbedChars)
	}

	var lastErr error
	for _, model := range p.models {
		embedding, err := p.backend.Embed(ctx, truncated, model)
		if err != nil {
			lastErr = err
			logger.Debug("Embedding model %s failed: %v", model, err)
			continue
		}
		if len(embedding) == 0 {
			lastErr = errors.New("backend returned empty embedding")
			continue
		}
		logger.Info("Generated embedding using model %s (%d dimensions)", model, len(embedding))
		return embedding
	}

	logger.Warn("All embedding models failed, using fallback: %v", lastErr)
	return nil
}

// FallbackEmbedding builds a deterministic 384-dimension vector from
// the text without any external call: each whitespace token is hashed
// into a bucket by the sum of its character codes, weighted by
// 1/(position+1), then the vector is L2-normalised. A zero vector maps
// to itself.
func FallbackEmbedding(text string) []float32 {
	vector := make([]float32, FallbackDimensions)

	words := strings.Fields(strings.ToLower(text))
	for idx, word := range words {
		var hash int
		for _, r := range word {
			hash += int(r)
		}
		vector[hash%FallbackDimensions] += float32(1.0 / float64(idx+1))
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return vector
	}

	for i := range vector {
		vector[i] = float32(float64(vector[i]) / magnitude)
	}
	return vector
}

// shortKey truncates a cache key for log output.
func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
