package driving

import (
	"context"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// DocumentService manages the knowledge base contents.
// These operations are thin pass-throughs to the DocumentStore with
// embedding generation interposed on writes. Unlike the retrieval
// pipeline, persistence failures here are propagated: they indicate
// the knowledge base itself may be in an inconsistent state.
type DocumentService interface {
	// Store embeds and persists a document in the shared collection.
	// An empty docID gets a generated identifier. Returns the stored
	// document's ID.
	Store(ctx context.Context, docID, text string, metadata map[string]any) (string, error)

	// StorePersonal embeds and persists a document in a user's
	// personal collection.
	StorePersonal(ctx context.Context, ownerID, title, text string, metadata map[string]any) (string, error)

	// Delete removes a document. Returns true if one was removed.
	Delete(ctx context.Context, docID string) (bool, error)

	// Clear removes every shared document and drops the embedding
	// cache.
	Clear(ctx context.Context) error

	// Count returns the number of shared documents.
	Count(ctx context.Context) (int, error)

	// ListPreview returns truncated views of all shared documents.
	ListPreview(ctx context.Context) ([]domain.DocumentPreview, error)
}
