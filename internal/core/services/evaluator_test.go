package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

func TestEvaluate_NoDocuments(t *testing.T) {
	llm := &mockLLM{}
	evaluator := NewRelevanceEvaluator(llm, nil, "")

	eval := evaluator.Evaluate(context.Background(), "query", nil)

	assert.False(t, eval.IsRelevant)
	assert.Zero(t, eval.Score)
	assert.Equal(t, "No documents retrieved", eval.Reason)
	assert.Equal(t, 0, llm.calls, "empty retrieval must not call the LLM")
}

func TestEvaluate_ParsesLLMReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{
			name:  "bare JSON",
			reply: `{"isRelevant": true, "score": 0.85, "reason": "documents answer the query"}`,
		},
		{
			name:  "fenced JSON",
			reply: "```json\n{\"isRelevant\": true, \"score\": 0.85, \"reason\": \"documents answer the query\"}\n```",
		},
		{
			name:  "JSON wrapped in prose",
			reply: `Sure! Here is my evaluation: {"isRelevant": true, "score": 0.85, "reason": "documents answer the query"} Hope that helps.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLM{
				completeFn: func(string, string) (string, error) {
					return tt.reply, nil
				},
			}
			evaluator := NewRelevanceEvaluator(llm, nil, "")

			eval := evaluator.Evaluate(context.Background(), "query", []domain.RetrievalResult{
				{DocID: "a", Text: "some text", Similarity: 0.2},
			})

			assert.True(t, eval.IsRelevant)
			assert.InDelta(t, 0.85, eval.Score, 1e-9)
			assert.Equal(t, "documents answer the query", eval.Reason)
		})
	}
}

func TestEvaluate_FallbackOnLLMError(t *testing.T) {
	llm := &mockLLM{
		completeFn: func(string, string) (string, error) {
			return "", errors.New("rate limited")
		},
	}
	evaluator := NewRelevanceEvaluator(llm, nil, "")

	docs := []domain.RetrievalResult{
		{Similarity: 0.9},
		{Similarity: 0.7},
	}
	eval := evaluator.Evaluate(context.Background(), "query", docs)

	assert.True(t, eval.IsRelevant)
	assert.InDelta(t, 0.8, eval.Score, 1e-9)
	assert.Equal(t, "fallback", eval.Reason)
}

func TestEvaluate_FallbackOnUnparseableReply(t *testing.T) {
	llm := &mockLLM{
		completeFn: func(string, string) (string, error) {
			return "the documents seem fine to me", nil
		},
	}
	evaluator := NewRelevanceEvaluator(llm, nil, "")

	docs := []domain.RetrievalResult{{Similarity: 0.3}}
	eval := evaluator.Evaluate(context.Background(), "query", docs)

	assert.False(t, eval.IsRelevant)
	assert.InDelta(t, 0.3, eval.Score, 1e-9)
	assert.Equal(t, "fallback", eval.Reason)
}

func TestEvaluate_NilBackendUsesHeuristic(t *testing.T) {
	evaluator := NewRelevanceEvaluator(nil, nil, "")

	docs := []domain.RetrievalResult{
		{Similarity: 0.5},
		{Similarity: 0.6},
	}
	eval := evaluator.Evaluate(context.Background(), "query", docs)

	assert.False(t, eval.IsRelevant)
	assert.InDelta(t, 0.55, eval.Score, 1e-9)
	assert.Equal(t, "fallback", eval.Reason)
}

func TestEvaluate_PromptContainsPreviews(t *testing.T) {
	var prompt string
	llm := &mockLLM{
		completeFn: func(p, _ string) (string, error) {
			prompt = p
			return `{"isRelevant": false, "score": 0.1, "reason": "off topic"}`, nil
		},
	}
	evaluator := NewRelevanceEvaluator(llm, nil, "")

	evaluator.Evaluate(context.Background(), "what do pandas eat", []domain.RetrievalResult{
		{Text: "pandas eat bamboo almost exclusively", Similarity: 0.512},
	})

	assert.Contains(t, prompt, "what do pandas eat")
	assert.Contains(t, prompt, "pandas eat bamboo")
	assert.Contains(t, prompt, "0.512")
}

func TestMeetsThreshold(t *testing.T) {
	tests := []struct {
		name string
		eval domain.Evaluation
		want bool
	}{
		{"relevant above threshold", domain.Evaluation{IsRelevant: true, Score: 0.8}, true},
		{"relevant at threshold", domain.Evaluation{IsRelevant: true, Score: 0.7}, true},
		{"relevant below threshold", domain.Evaluation{IsRelevant: true, Score: 0.69}, false},
		{"irrelevant above threshold", domain.Evaluation{IsRelevant: false, Score: 0.9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.eval.MeetsThreshold())
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, false},
		{"nested object", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, false},
		{"brace inside string", `{"a": "}"}`, `{"a": "}"}`, false},
		{"prose around object", `prefix {"a": 1} suffix`, `{"a": 1}`, false},
		{"no object", "plain text", "", true},
		{"unbalanced", `{"a": 1`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
