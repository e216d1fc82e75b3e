package driven

import "context"

// CompletionBackend provides language model completions for relevance
// evaluation and query refinement.
// This is an optional service - when nil, evaluation falls back to the
// similarity heuristic and corrective retrieval is skipped.
//
// The same backend is used identically for both evaluation and
// refinement; only the prompt differs.
type CompletionBackend interface {
	// Complete produces a text completion for the prompt using the
	// given model identifier.
	Complete(ctx context.Context, prompt string, model string) (string, error)

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
