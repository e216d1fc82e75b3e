package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/logger"
)

// defaultRefinePrompt is the embedded query refinement template.
// Placeholders: original query, evaluation reason, evaluation score.
const defaultRefinePrompt = `The following query did not retrieve relevant documents:

Query: %s

Evaluation: %s (score: %.2f)

Rewrite the query to be more specific and more likely to match relevant documents. Respond with ONLY the rewritten query, no explanation.`

// QueryCorrector implements the corrective step: when the evaluation
// falls below the relevance threshold it asks the LLM to refine the
// query and retrieves once more with the refined form. Every failure
// mode fails open to the initial retrieval.
type QueryCorrector struct {
	llm       driven.CompletionBackend // optional
	prompts   driven.PromptStore       // optional
	retriever *Retriever
	model     string
}

// NewQueryCorrector creates a corrector. llm and prompts may be nil;
// an empty model defaults to domain.DefaultCompletionModel.
func NewQueryCorrector(llm driven.CompletionBackend, prompts driven.PromptStore, retriever *Retriever, model string) *QueryCorrector {
	if model == "" {
		model = domain.DefaultCompletionModel
	}
	return &QueryCorrector{
		llm:       llm,
		prompts:   prompts,
		retriever: retriever,
		model:     model,
	}
}

// Correct runs at most one refine-and-retrieve round. When the
// evaluation already meets the threshold the initial documents are
// returned untouched. The returned outcome always carries a usable
// document set; Err records why a correction did not happen.
func (c *QueryCorrector) Correct(
	ctx context.Context,
	query string,
	initial []domain.RetrievalResult,
	evaluation domain.Evaluation,
) domain.CorrectionOutcome {
	outcome := domain.CorrectionOutcome{
		Documents:     initial,
		Corrected:     false,
		OriginalQuery: query,
	}

	if evaluation.MeetsThreshold() {
		return outcome
	}

	if c.llm == nil {
		outcome.Err = "no completion backend available"
		logger.Debug("Correction skipped: %s", outcome.Err)
		return outcome
	}

	refined, err := c.refineQuery(ctx, query, evaluation)
	if err != nil {
		outcome.Err = err.Error()
		logger.Warn("Query refinement failed: %v", err)
		return outcome
	}
	if refined == "" || refined == query {
		outcome.Err = "refinement produced no new query"
		logger.Debug("Correction skipped: %s", outcome.Err)
		return outcome
	}

	logger.Info("Refined query: %q -> %q", query, refined)

	docs, err := c.retriever.TopK(ctx, refined, domain.DefaultTopK)
	if err != nil {
		outcome.Err = fmt.Sprintf("re-retrieval failed: %v", err)
		logger.Warn("Corrective retrieval failed: %v", err)
		return outcome
	}

	outcome.Documents = docs
	outcome.Corrected = true
	outcome.RefinedQuery = refined
	return outcome
}

// refineQuery asks the LLM for a rewritten query. The reply is
// trimmed of whitespace and surrounding quotes.
func (c *QueryCorrector) refineQuery(ctx context.Context, query string, evaluation domain.Evaluation) (string, error) {
	template := defaultRefinePrompt
	if c.prompts != nil {
		if loaded, err := c.prompts.Load(driven.PromptQueryRefine); err == nil && loaded != "" {
			template = loaded
		}
	}

	prompt := fmt.Sprintf(template, query, evaluation.Reason, evaluation.Score)
	reply, err := c.llm.Complete(ctx, prompt, c.model)
	if err != nil {
		return "", fmt.Errorf("refine query: %w", err)
	}

	refined := strings.TrimSpace(reply)
	refined = strings.Trim(refined, `"'`)
	// Some models still prefix a label despite the instruction.
	refined = strings.TrimSpace(strings.TrimPrefix(refined, "Query:"))
	return refined, nil
}
