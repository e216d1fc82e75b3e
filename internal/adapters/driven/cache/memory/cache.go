// Package memory provides a process-lifetime in-memory embedding cache.
package memory

import (
	"sync"

	"github.com/quarry-labs/corrag/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache is a map-backed implementation of
// driven.EmbeddingCache. Entries live until Clear or process exit;
// there is no eviction.
type EmbeddingCache struct {
	mu      sync.RWMutex
	entries map[string][]float32
}

// NewEmbeddingCache creates an empty cache.
func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{
		entries: make(map[string][]float32),
	}
}

// Get returns the cached vector for the key, if present.
func (c *EmbeddingCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	embedding, ok := c.entries[key]
	return embedding, ok
}

// Put stores a vector under the key.
func (c *EmbeddingCache) Put(key string, embedding []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = embedding
}

// Clear drops every entry.
func (c *EmbeddingCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]float32)
}

// Len returns the number of cached entries.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
