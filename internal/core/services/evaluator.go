package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/logger"
)

// evalPreviewLength is how much of each document is quoted in the
// evaluation prompt.
const evalPreviewLength = 500

// defaultEvalPrompt is the embedded relevance evaluation template,
// used when no prompt store is configured or the named prompt is
// missing. Placeholders: query, documents block.
const defaultEvalPrompt = `You are evaluating whether retrieved documents are relevant to a user query.

User Query: %s

Retrieved Documents:
%s

Evaluate the relevance of these documents to the query. Consider:
1. Do the documents contain information directly related to the query?
2. Are the documents useful for answering the query?
3. Is the information accurate and up-to-date?

Respond in JSON format:
{
  "isRelevant": true/false,
  "score": 0.0-1.0,
  "reason": "brief explanation"
}`

// RelevanceEvaluator asks an LLM to judge whether retrieved documents
// answer the query. It never returns an error: when the backend is
// missing, the call fails, or the reply cannot be parsed, it falls
// back to the average-similarity heuristic so the orchestrator can
// proceed unconditionally.
type RelevanceEvaluator struct {
	llm     driven.CompletionBackend // optional
	prompts driven.PromptStore       // optional
	model   string
}

// NewRelevanceEvaluator creates an evaluator. llm and prompts may be
// nil; an empty model defaults to domain.DefaultCompletionModel.
func NewRelevanceEvaluator(llm driven.CompletionBackend, prompts driven.PromptStore, model string) *RelevanceEvaluator {
	if model == "" {
		model = domain.DefaultCompletionModel
	}
	return &RelevanceEvaluator{
		llm:     llm,
		prompts: prompts,
		model:   model,
	}
}

// Evaluate judges the relevance of docs to the query.
func (e *RelevanceEvaluator) Evaluate(ctx context.Context, query string, docs []domain.RetrievalResult) domain.Evaluation {
	if len(docs) == 0 {
		return domain.Evaluation{
			IsRelevant: false,
			Score:      0,
			Reason:     "No documents retrieved",
		}
	}

	if e.llm == nil {
		logger.Debug("No completion backend, using similarity heuristic")
		return e.fallback(docs)
	}

	reply, err := e.llm.Complete(ctx, e.buildPrompt(query, docs), e.model)
	if err != nil {
		logger.Warn("Relevance evaluation call failed: %v", err)
		return e.fallback(docs)
	}

	evaluation, err := parseEvaluation(reply)
	if err != nil {
		logger.Warn("Could not parse evaluation reply: %v", err)
		return e.fallback(docs)
	}

	logger.Info("LLM evaluation: relevant=%t score=%.2f", evaluation.IsRelevant, evaluation.Score)
	return evaluation
}

// fallback is the similarity heuristic: relevant iff the average
// similarity clears the threshold.
func (e *RelevanceEvaluator) fallback(docs []domain.RetrievalResult) domain.Evaluation {
	avg := averageSimilarity(docs)
	return domain.Evaluation{
		IsRelevant: avg >= domain.RelevanceThreshold,
		Score:      avg,
		Reason:     "fallback",
	}
}

// buildPrompt renders the evaluation prompt with truncated document
// previews and their similarity scores.
func (e *RelevanceEvaluator) buildPrompt(query string, docs []domain.RetrievalResult) string {
	var block strings.Builder
	for i := range docs {
		preview := docs[i].Text
		if len(preview) > evalPreviewLength {
			preview = preview[:evalPreviewLength]
		}
		if i > 0 {
			block.WriteString("\n\n")
		}
		fmt.Fprintf(&block, "Document %d (similarity: %.3f):\n%s...", i+1, docs[i].Similarity, preview)
	}

	template := defaultEvalPrompt
	if e.prompts != nil {
		if loaded, err := e.prompts.Load(driven.PromptRelevanceEval); err == nil && loaded != "" {
			template = loaded
		}
	}

	return fmt.Sprintf(template, query, block.String())
}

// llmEvaluation is the wire shape of the structured judgment embedded
// in the model's free-form reply.
type llmEvaluation struct {
	IsRelevant bool    `json:"isRelevant"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
}

// parseEvaluation extracts and strictly parses the first balanced
// brace-delimited substring of the reply. Partial fields are never
// guessed: any parse failure sends the caller to the heuristic.
func parseEvaluation(reply string) (domain.Evaluation, error) {
	payload, err := extractJSONObject(reply)
	if err != nil {
		return domain.Evaluation{}, err
	}

	var parsed llmEvaluation
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return domain.Evaluation{}, fmt.Errorf("unmarshal evaluation: %w", err)
	}

	return domain.Evaluation{
		IsRelevant: parsed.IsRelevant,
		Score:      parsed.Score,
		Reason:     parsed.Reason,
	}, nil
}

// extractJSONObject returns the first balanced brace-delimited
// substring of s. Models wrap JSON in prose and markdown fences, so
// everything outside the braces is ignored.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errors.New("no JSON object in reply")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", errors.New("unbalanced JSON object in reply")
}
