// Package memory provides in-memory driven adapters, used for tests
// and for ephemeral runs without a database file.
package memory

import (
	"context"
	"sync"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of
// driven.DocumentStore. Find operations return documents in insertion
// order, which keeps tie-breaking in retrieval deterministic.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]domain.Document
	order []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]domain.Document),
	}
}

// Upsert stores a document, replacing any existing record with the
// same ID.
func (s *DocumentStore) Upsert(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.docs[doc.ID] = *doc
	return nil
}

// FindAll returns every document in the shared collection.
func (s *DocumentStore) FindAll(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(""), nil
}

// FindByOwner returns every document owned by the given user.
func (s *DocumentStore) FindByOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(ownerID), nil
}

// find filters by owner scope. Callers hold the lock.
func (s *DocumentStore) find(ownerID string) []domain.Document {
	result := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		if doc := s.docs[id]; doc.OwnerID == ownerID {
			result = append(result, doc)
		}
	}
	return result
}

// DeleteByID removes a document. Returns true if one was removed.
func (s *DocumentStore) DeleteByID(_ context.Context, docID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[docID]; !ok {
		return false, nil
	}
	delete(s.docs, docID)
	for i, id := range s.order {
		if id == docID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// DeleteAll removes every document in the shared collection. Personal
// documents are untouched.
func (s *DocumentStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.order[:0]
	for _, id := range s.order {
		if s.docs[id].OwnerID == "" {
			delete(s.docs, id)
		} else {
			kept = append(kept, id)
		}
	}
	s.order = kept
	return nil
}

// Count returns the number of documents in the shared collection.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.find("")), nil
}

// CountByOwner returns the number of documents owned by the user.
func (s *DocumentStore) CountByOwner(_ context.Context, ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.find(ownerID)), nil
}
