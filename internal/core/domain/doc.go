// Package domain defines the core business entities for corrag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A stored knowledge item with its embedding
//   - RetrievalResult: A scored hit produced by a retrieval pass
//   - Evaluation: An LLM (or heuristic) relevance judgment
//   - CRAGResult: The final output of the corrective retrieval pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
