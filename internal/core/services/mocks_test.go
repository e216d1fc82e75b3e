package services

import (
	"context"
	"errors"
	"sync"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// mockDocStore is an in-memory DocumentStore that records call counts.
type mockDocStore struct {
	mu   sync.Mutex
	docs map[string]domain.Document
	ids  []string

	upsertCalls  int
	findAllCalls int
	countCalls   int

	failWith error
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]domain.Document)}
}

func (s *mockDocStore) Upsert(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertCalls++
	if s.failWith != nil {
		return s.failWith
	}
	if _, exists := s.docs[doc.ID]; !exists {
		s.ids = append(s.ids, doc.ID)
	}
	s.docs[doc.ID] = *doc
	return nil
}

func (s *mockDocStore) FindAll(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findAllCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []domain.Document
	for _, id := range s.ids {
		if doc := s.docs[id]; doc.OwnerID == "" {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *mockDocStore) FindByOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []domain.Document
	for _, id := range s.ids {
		if doc := s.docs[id]; doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *mockDocStore) DeleteByID(_ context.Context, docID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	if _, ok := s.docs[docID]; !ok {
		return false, nil
	}
	delete(s.docs, docID)
	for i, id := range s.ids {
		if id == docID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *mockDocStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	for id, doc := range s.docs {
		if doc.OwnerID == "" {
			delete(s.docs, id)
		}
	}
	remaining := s.ids[:0]
	for _, id := range s.ids {
		if _, ok := s.docs[id]; ok {
			remaining = append(remaining, id)
		}
	}
	s.ids = remaining
	return nil
}

func (s *mockDocStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countCalls++
	if s.failWith != nil {
		return 0, s.failWith
	}
	n := 0
	for _, doc := range s.docs {
		if doc.OwnerID == "" {
			n++
		}
	}
	return n, nil
}

func (s *mockDocStore) CountByOwner(_ context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	n := 0
	for _, doc := range s.docs {
		if doc.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *mockDocStore) seed(docs ...domain.Document) {
	for i := range docs {
		doc := docs[i]
		_ = s.Upsert(context.Background(), &doc)
	}
	s.mu.Lock()
	s.upsertCalls = 0
	s.mu.Unlock()
}

// mockEmbedder is a configurable EmbeddingBackend counting Embed calls.
type mockEmbedder struct {
	mu       sync.Mutex
	calls    int
	lastText string
	models   []string
	embedFn  func(text, model string) ([]float32, error)
}

func (e *mockEmbedder) Embed(_ context.Context, text, model string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.lastText = text
	e.models = append(e.models, model)
	fn := e.embedFn
	e.mu.Unlock()
	if fn == nil {
		return nil, errors.New("no embed function configured")
	}
	return fn(text, model)
}

func (e *mockEmbedder) Ping(context.Context) error { return nil }
func (e *mockEmbedder) Close() error               { return nil }

func (e *mockEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// mockCache is a plain map-backed EmbeddingCache.
type mockCache struct {
	mu      sync.Mutex
	entries map[string][]float32
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]float32)}
}

func (c *mockCache) Get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mockCache) Put(key string, embedding []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = embedding
}

func (c *mockCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]float32)
}

func (c *mockCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// mockLLM is a configurable CompletionBackend.
type mockLLM struct {
	mu         sync.Mutex
	calls      int
	lastPrompt string
	completeFn func(prompt, model string) (string, error)
}

func (l *mockLLM) Complete(_ context.Context, prompt, model string) (string, error) {
	l.mu.Lock()
	l.calls++
	l.lastPrompt = prompt
	fn := l.completeFn
	l.mu.Unlock()
	if fn == nil {
		return "", errors.New("no complete function configured")
	}
	return fn(prompt, model)
}

func (l *mockLLM) Ping(context.Context) error { return nil }
func (l *mockLLM) Close() error               { return nil }

// fallbackProvider builds an embedding provider with no backend, so
// every vector comes from the deterministic local fallback.
func fallbackProvider() *EmbeddingProvider {
	return NewEmbeddingProvider(nil, newMockCache(), nil, nil)
}

// fallbackDoc builds a shared document embedded with the local
// fallback, matching what a query embedding for the same text yields.
func fallbackDoc(id, text string) domain.Document {
	return domain.Document{
		ID:        id,
		Text:      text,
		Embedding: FallbackEmbedding(text),
	}
}
