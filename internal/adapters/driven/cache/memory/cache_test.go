package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCache_GetPut(t *testing.T) {
	cache := NewEmbeddingCache()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Put("key", []float32{1, 2, 3})
	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, got)
	assert.Equal(t, 1, cache.Len())
}

func TestEmbeddingCache_Overwrite(t *testing.T) {
	cache := NewEmbeddingCache()

	cache.Put("key", []float32{1})
	cache.Put("key", []float32{2})

	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, got)
	assert.Equal(t, 1, cache.Len())
}

func TestEmbeddingCache_Clear(t *testing.T) {
	cache := NewEmbeddingCache()
	cache.Put("a", []float32{1})
	cache.Put("b", []float32{2})

	cache.Clear()

	assert.Zero(t, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestEmbeddingCache_ConcurrentAccess(t *testing.T) {
	cache := NewEmbeddingCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Put("shared", []float32{1, 2})
			cache.Get("shared")
			cache.Len()
		}()
	}
	wg.Wait()

	got, ok := cache.Get("shared")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2}, got)
}
