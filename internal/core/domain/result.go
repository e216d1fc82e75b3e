package domain

// RelevanceThreshold is the minimum evaluation score for retrieved
// documents to be considered relevant (0-1, higher = more strict).
const RelevanceThreshold = 0.7

// Default retrieval depths for the two collections.
const (
	// DefaultTopK is the number of documents retrieved from the
	// shared collection per query.
	DefaultTopK = 5

	// DefaultPersonalTopK is the number of documents retrieved from
	// a user's personal collection per query.
	DefaultPersonalTopK = 3
)

// RetrievalResult is a single scored hit from a retrieval pass.
// It is transient: produced per query and discarded after response
// assembly, never persisted.
type RetrievalResult struct {
	// DocID is the matched document.
	DocID string

	// Text is the full document text.
	Text string

	// Title is the document title, if any.
	Title string

	// Metadata is the stored metadata bag.
	Metadata map[string]any

	// Similarity is the cosine similarity against the query embedding.
	Similarity float64
}

// Evaluation is a relevance judgment over a set of retrieved documents.
// It is produced either by an LLM or by the similarity heuristic
// fallback; callers cannot tell the difference except via Reason.
type Evaluation struct {
	// IsRelevant reports whether the documents answer the query.
	IsRelevant bool

	// Score is the judged relevance in [0, 1].
	Score float64

	// Reason is a brief explanation of the judgment.
	Reason string
}

// MeetsThreshold reports whether the evaluation clears the relevance
// bar: a positive judgment with a score at or above the threshold.
func (e Evaluation) MeetsThreshold() bool {
	return e.IsRelevant && e.Score >= RelevanceThreshold
}

// CRAGResult is the output of the corrective retrieval pipeline.
// The orchestrator guarantees a structurally valid result under every
// internal failure, so this type is always safe to consume.
type CRAGResult struct {
	// Documents are the final ranked hits (initial or corrected).
	Documents []RetrievalResult

	// Context is the assembled context string: each document's full
	// text under a "[Document N]" label, separated by a delimiter,
	// in final ranking order.
	Context string

	// Evaluation is the relevance judgment of the initial retrieval.
	Evaluation Evaluation

	// Corrected reports whether the corrective re-retrieval replaced
	// the initial result set.
	Corrected bool

	// RefinedQuery is the rewritten query when Corrected is true.
	RefinedQuery string

	// OriginalQuery is the query as submitted by the caller.
	OriginalQuery string
}

// CorrectionOutcome is the result of a corrective retrieval attempt.
// Correction never raises: on any failure it degrades to the initial
// result set and records the cause in Err.
type CorrectionOutcome struct {
	// Documents are the documents to use (corrected or initial).
	Documents []RetrievalResult

	// Corrected reports whether a re-retrieval actually happened.
	Corrected bool

	// RefinedQuery is the rewritten query, when Corrected.
	RefinedQuery string

	// OriginalQuery is the query the correction started from.
	OriginalQuery string

	// Err describes why correction was skipped or failed, if it was.
	Err string
}
