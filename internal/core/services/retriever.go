package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/logger"
)

// Retriever performs brute-force top-K similarity search over a
// document collection. There is deliberately no index: the whole
// collection is scanned and scored per query.
//
// Shared and personal search are the same pipeline; the only
// difference is the owner filter applied before scoring.
type Retriever struct {
	store    driven.DocumentStore
	embedder *EmbeddingProvider
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(store driven.DocumentStore, embedder *EmbeddingProvider) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
	}
}

// TopK returns the k highest-scoring shared documents for the query,
// sorted by similarity descending. k defaults to domain.DefaultTopK
// when non-positive.
func (r *Retriever) TopK(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		k = domain.DefaultTopK
	}
	return r.retrieve(ctx, "", query, k)
}

// TopKForOwner returns the k highest-scoring documents in the given
// user's personal collection. k defaults to domain.DefaultPersonalTopK
// when non-positive.
func (r *Retriever) TopKForOwner(ctx context.Context, ownerID, query string, k int) ([]domain.RetrievalResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = domain.DefaultPersonalTopK
	}
	return r.retrieve(ctx, ownerID, query, k)
}

// retrieve is the shared retrieval pipeline.
func (r *Retriever) retrieve(ctx context.Context, ownerID, query string, k int) ([]domain.RetrievalResult, error) {
	// Empty collections short-circuit before the embedding call, so
	// an empty knowledge base never costs a backend request.
	count, err := r.count(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		logger.Debug("Collection empty, skipping retrieval")
		return []domain.RetrievalResult{}, nil
	}

	queryEmbedding, err := r.embedder.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(queryEmbedding))

	docs, err := r.fetch(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	results := make([]domain.RetrievalResult, 0, len(docs))
	skipped := 0
	for i := range docs {
		if !docs[i].HasValidEmbedding() {
			skipped++
			continue
		}

		similarity, err := CosineSimilarity(queryEmbedding, docs[i].Embedding)
		if err != nil {
			// Mixed dimensionalities in one collection break pairwise
			// comparison. The write-time guard prevents new mixes;
			// records written before it existed are skipped so the
			// rest of the collection still serves the query.
			logger.Warn("Skipping document %s: %v (%d vs %d dims)",
				docs[i].ID, err, len(queryEmbedding), len(docs[i].Embedding))
			skipped++
			continue
		}

		results = append(results, domain.RetrievalResult{
			DocID:      docs[i].ID,
			Text:       docs[i].Text,
			Title:      docs[i].Title,
			Metadata:   docs[i].Metadata,
			Similarity: similarity,
		})
	}

	if skipped > 0 {
		logger.Debug("Skipped %d documents without comparable embeddings", skipped)
	}

	// Stable sort keeps the store's iteration order for ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}
	logger.Info("Retrieved %d documents (top-%d)", len(results), k)
	return results, nil
}

func (r *Retriever) count(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return r.store.Count(ctx)
	}
	return r.store.CountByOwner(ctx, ownerID)
}

func (r *Retriever) fetch(ctx context.Context, ownerID string) ([]domain.Document, error) {
	if ownerID == "" {
		return r.store.FindAll(ctx)
	}
	return r.store.FindByOwner(ctx, ownerID)
}
