package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the
// binary, or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt
	// is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and
// providers.
const (
	// PromptRelevanceEval judges whether retrieved documents answer a
	// query. The template expects %s (query) and %s (documents block)
	// placeholders and must instruct the model to reply with a JSON
	// object {isRelevant, score, reason}.
	PromptRelevanceEval = "relevance_eval"

	// PromptQueryRefine rewrites a query after a failed retrieval.
	// The template expects %s (original query), %s (evaluation
	// reason) and %.2f (relevance score) placeholders and must
	// instruct the model to reply with only the refined query.
	PromptQueryRefine = "query_refine"
)
