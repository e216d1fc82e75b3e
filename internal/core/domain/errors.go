package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyInput indicates blank text was submitted for embedding.
	// This is surfaced to the immediate caller, never swallowed.
	ErrEmptyInput = errors.New("text cannot be empty")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch indicates vectors of unequal length were
	// compared, or a write would mix dimensionalities in one
	// collection. Mixing real-backend vectors with fallback vectors
	// breaks pairwise comparison, so writes are guarded.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates no embedding backend is
	// configured. The deterministic local fallback takes over.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

	// ErrLLMUnavailable indicates no completion backend is configured.
	// Evaluation and correction degrade to their heuristic fallbacks.
	ErrLLMUnavailable = errors.New("completion backend unavailable")
)
