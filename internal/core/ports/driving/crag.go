package driving

import (
	"context"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// CRAGService provides corrective retrieval-augmented generation to
// external actors.
type CRAGService interface {
	// PerformCRAG runs the full pipeline for the shared collection:
	// retrieve, evaluate, correct if needed, and assemble context.
	// It never returns an error: every internal failure is absorbed
	// into a structurally valid result.
	PerformCRAG(ctx context.Context, query string, enableCorrection bool) domain.CRAGResult

	// SearchPersonal runs a one-shot top-K similarity search over a
	// single user's personal collection. No evaluation or correction
	// is applied; this asymmetry is an intentional scope reduction.
	SearchPersonal(ctx context.Context, ownerID, query string, k int) ([]domain.RetrievalResult, error)
}
