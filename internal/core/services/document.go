package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/core/ports/driving"
	"github.com/quarry-labs/corrag/internal/logger"
)

// DocumentManager implements knowledge base maintenance: embed on
// write, upsert by ID, delete, clear, list. Unlike the retrieval
// pipeline, persistence failures propagate to the caller.
type DocumentManager struct {
	store    driven.DocumentStore
	cache    driven.EmbeddingCache
	embedder *EmbeddingProvider
}

var _ driving.DocumentService = (*DocumentManager)(nil)

// NewDocumentManager creates a document manager.
func NewDocumentManager(store driven.DocumentStore, cache driven.EmbeddingCache, embedder *EmbeddingProvider) *DocumentManager {
	return &DocumentManager{
		store:    store,
		cache:    cache,
		embedder: embedder,
	}
}

// Store embeds and persists a document in the shared collection.
func (m *DocumentManager) Store(ctx context.Context, docID, text string, metadata map[string]any) (string, error) {
	return m.persist(ctx, docID, "", "", text, metadata)
}

// StorePersonal embeds and persists a document in a user's personal
// collection.
func (m *DocumentManager) StorePersonal(ctx context.Context, ownerID, title, text string, metadata map[string]any) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}
	return m.persist(ctx, "", ownerID, title, text, metadata)
}

// persist is the shared write path. An empty docID gets a generated
// UUID. The write-time dimension guard rejects embeddings that do not
// match the collection's established dimensionality.
func (m *DocumentManager) persist(ctx context.Context, docID, ownerID, title, text string, metadata map[string]any) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyInput
	}

	embedding, err := m.embedder.Generate(ctx, text)
	if err != nil {
		return "", fmt.Errorf("generate embedding: %w", err)
	}

	if err := m.checkDimensions(ctx, ownerID, len(embedding)); err != nil {
		return "", err
	}

	if docID == "" {
		docID = uuid.NewString()
	}

	doc := &domain.Document{
		ID:        docID,
		OwnerID:   ownerID,
		Title:     title,
		Text:      text,
		Embedding: embedding,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
	if err := m.store.Upsert(ctx, doc); err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	logger.Info("Stored document %s (%d chars, %d dims)", docID, len(text), len(embedding))
	return docID, nil
}

// checkDimensions enforces a single embedding dimensionality per
// collection. The first valid embedding in the collection sets the
// expected size; later writes must match it.
func (m *DocumentManager) checkDimensions(ctx context.Context, ownerID string, dims int) error {
	var (
		docs []domain.Document
		err  error
	)
	if ownerID == "" {
		docs, err = m.store.FindAll(ctx)
	} else {
		docs, err = m.store.FindByOwner(ctx, ownerID)
	}
	if err != nil {
		return fmt.Errorf("check embedding dimensions: %w", err)
	}

	for i := range docs {
		if !docs[i].HasValidEmbedding() {
			continue
		}
		if len(docs[i].Embedding) != dims {
			return fmt.Errorf("%w: collection uses %d dimensions, got %d",
				domain.ErrDimensionMismatch, len(docs[i].Embedding), dims)
		}
		return nil
	}
	return nil
}

// Delete removes a document by ID. Returns true if one was removed.
func (m *DocumentManager) Delete(ctx context.Context, docID string) (bool, error) {
	if docID == "" {
		return false, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	removed, err := m.store.DeleteByID(ctx, docID)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	if removed {
		logger.Info("Deleted document %s", docID)
	}
	return removed, nil
}

// Clear removes every shared document and drops the embedding cache.
// The cache is dropped with the documents so stale vectors cannot
// outlive the texts that produced them.
func (m *DocumentManager) Clear(ctx context.Context) error {
	if err := m.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	m.cache.Clear()
	logger.Info("Cleared shared collection and embedding cache")
	return nil
}

// Count returns the number of shared documents.
func (m *DocumentManager) Count(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

// ListPreview returns truncated views of all shared documents.
func (m *DocumentManager) ListPreview(ctx context.Context) ([]domain.DocumentPreview, error) {
	docs, err := m.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	previews := make([]domain.DocumentPreview, len(docs))
	for i := range docs {
		previews[i] = docs[i].Preview()
	}
	return previews, nil
}
