// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - DocumentStore: Document persistence (shared and personal collections)
//   - EmbeddingCache: Process-lifetime embedding cache
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - EmbeddingBackend: Hosted embedding generation. Without it, the
//     deterministic local fallback embedding is used.
//   - CompletionBackend: LLM completions. Without it, relevance
//     evaluation falls back to the similarity heuristic and corrective
//     retrieval is skipped.
//   - PromptStore: User-editable prompt templates. Without it, embedded
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
