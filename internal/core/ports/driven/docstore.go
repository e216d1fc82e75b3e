package driven

import (
	"context"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// DocumentStore persists documents for retrieval.
// The store owns docId uniqueness via upsert semantics; the core never
// checks for duplicates itself. Implementations must keep owner scopes
// separate: shared documents (empty OwnerID) and personal documents
// never appear in each other's result sets.
type DocumentStore interface {
	// Upsert stores a document, replacing any existing record with the
	// same ID.
	Upsert(ctx context.Context, doc *domain.Document) error

	// FindAll returns every document in the shared collection.
	FindAll(ctx context.Context) ([]domain.Document, error)

	// FindByOwner returns every document owned by the given user.
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Document, error)

	// DeleteByID removes a document. Returns true if one was removed.
	DeleteByID(ctx context.Context, docID string) (bool, error)

	// DeleteAll removes every document in the shared collection.
	DeleteAll(ctx context.Context) error

	// Count returns the number of documents in the shared collection.
	Count(ctx context.Context) (int, error)

	// CountByOwner returns the number of documents owned by the user.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
