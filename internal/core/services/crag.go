package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driving"
	"github.com/quarry-labs/corrag/internal/logger"
)

// contextSeparator joins labelled document texts in the assembled
// context string.
const contextSeparator = "\n\n---\n\n"

// CRAGOrchestrator runs the corrective retrieval pipeline:
// retrieve, evaluate, correct when warranted, assemble context.
// PerformCRAG absorbs every internal failure, including panics, into
// a structurally valid result so callers never need error handling.
type CRAGOrchestrator struct {
	retriever *Retriever
	evaluator *RelevanceEvaluator
	corrector *QueryCorrector
}

var _ driving.CRAGService = (*CRAGOrchestrator)(nil)

// NewCRAGOrchestrator wires the pipeline stages together.
func NewCRAGOrchestrator(retriever *Retriever, evaluator *RelevanceEvaluator, corrector *QueryCorrector) *CRAGOrchestrator {
	return &CRAGOrchestrator{
		retriever: retriever,
		evaluator: evaluator,
		corrector: corrector,
	}
}

// PerformCRAG runs the full pipeline for the shared collection.
func (o *CRAGOrchestrator) PerformCRAG(ctx context.Context, query string, enableCorrection bool) (result domain.CRAGResult) {
	result = domain.CRAGResult{
		Documents:     []domain.RetrievalResult{},
		OriginalQuery: query,
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("CRAG pipeline panic: %v", r)
			result = errorResult(query, fmt.Sprintf("%v", r))
		}
	}()

	logger.Section("CRAG")
	logger.Info("Query: %q (correction=%t)", query, enableCorrection)

	docs, err := o.retriever.TopK(ctx, query, domain.DefaultTopK)
	if err != nil {
		logger.Warn("Retrieval failed: %v", err)
		return errorResult(query, err.Error())
	}

	// An empty knowledge base ends the pipeline here: there is nothing
	// to evaluate and nothing a refined query could retrieve.
	if len(docs) == 0 {
		logger.Info("No documents retrieved, skipping evaluation and correction")
		result.Evaluation = domain.Evaluation{
			IsRelevant: false,
			Score:      0,
			Reason:     "No documents found in knowledge base",
		}
		return result
	}

	evaluation := o.evaluator.Evaluate(ctx, query, docs)
	result.Evaluation = evaluation
	result.Documents = docs

	if enableCorrection && !evaluation.MeetsThreshold() {
		outcome := o.corrector.Correct(ctx, query, docs, evaluation)
		result.Documents = outcome.Documents
		result.Corrected = outcome.Corrected
		result.RefinedQuery = outcome.RefinedQuery
	}

	result.Context = AssembleContext(result.Documents)
	logger.Info("Pipeline done: %d documents, corrected=%t", len(result.Documents), result.Corrected)
	return result
}

// SearchPersonal runs a one-shot top-K search over a user's personal
// collection. No evaluation or correction is applied.
func (o *CRAGOrchestrator) SearchPersonal(ctx context.Context, ownerID, query string, k int) ([]domain.RetrievalResult, error) {
	return o.retriever.TopKForOwner(ctx, ownerID, query, k)
}

// AssembleContext joins document texts into the context string handed
// to downstream generation: each full text under a positional
// "[Document N]" label, in ranking order. Empty input yields "".
func AssembleContext(docs []domain.RetrievalResult) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, len(docs))
	for i := range docs {
		parts[i] = fmt.Sprintf("[Document %d]\n%s", i+1, docs[i].Text)
	}
	return strings.Join(parts, contextSeparator)
}

// errorResult is the structurally valid empty result returned when the
// pipeline cannot run. The failure is surfaced in the evaluation
// reason rather than as an error.
func errorResult(query, msg string) domain.CRAGResult {
	return domain.CRAGResult{
		Documents: []domain.RetrievalResult{},
		Context:   "",
		Evaluation: domain.Evaluation{
			IsRelevant: false,
			Score:      0,
			Reason:     "Error: " + msg,
		},
		Corrected:     false,
		OriginalQuery: query,
	}
}
