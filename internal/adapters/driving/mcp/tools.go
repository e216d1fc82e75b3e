package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// QueryInput is the input schema for the crag_query tool.
type QueryInput struct {
	Query             string `json:"query" jsonschema:"the question to answer from the knowledge base"`
	DisableCorrection bool   `json:"disable_correction,omitempty" jsonschema:"skip the corrective re-retrieval stage"`
}

// QueryOutput is the output schema for the crag_query tool.
type QueryOutput struct {
	Context      string           `json:"context"`
	Documents    []DocumentOutput `json:"documents"`
	IsRelevant   bool             `json:"is_relevant"`
	Score        float64          `json:"score"`
	Reason       string           `json:"reason"`
	Corrected    bool             `json:"corrected"`
	RefinedQuery string           `json:"refined_query,omitempty"`
}

// DocumentOutput represents a single retrieved document.
type DocumentOutput struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title,omitempty"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// PersonalSearchInput is the input schema for the personal_search tool.
type PersonalSearchInput struct {
	UserID string `json:"user_id" jsonschema:"the user whose personal collection to search"`
	Query  string `json:"query" jsonschema:"the search query"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 3)"`
}

// PersonalSearchOutput is the output schema for the personal_search tool.
type PersonalSearchOutput struct {
	Results []DocumentOutput `json:"results"`
	Count   int              `json:"count"`
}

// StoreDocumentInput is the input schema for the store_document tool.
type StoreDocumentInput struct {
	DocumentID string         `json:"document_id,omitempty" jsonschema:"optional identifier; generated when omitted, replaces an existing document when reused"`
	Text       string         `json:"text" jsonschema:"the document content"`
	Metadata   map[string]any `json:"metadata,omitempty" jsonschema:"arbitrary key-value metadata"`
}

// StoreDocumentOutput is the output schema for the store_document tool.
type StoreDocumentOutput struct {
	DocumentID string `json:"document_id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "crag_query",
		Description: "Run corrective retrieval over the shared knowledge base and return assembled context",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "personal_search",
		Description: "Search a user's personal collection by similarity",
	}, s.handlePersonalSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "store_document",
		Description: "Embed and store a document in the shared knowledge base",
	}, s.handleStoreDocument)
}

// handleQuery handles the crag_query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	result := s.ports.CRAG.PerformCRAG(ctx, input.Query, !input.DisableCorrection)

	output := QueryOutput{
		Context:      result.Context,
		Documents:    toDocumentOutputs(result.Documents),
		IsRelevant:   result.Evaluation.IsRelevant,
		Score:        result.Evaluation.Score,
		Reason:       result.Evaluation.Reason,
		Corrected:    result.Corrected,
		RefinedQuery: result.RefinedQuery,
	}

	return nil, output, nil
}

// handlePersonalSearch handles the personal_search tool invocation.
func (s *Server) handlePersonalSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PersonalSearchInput,
) (*mcp.CallToolResult, PersonalSearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultPersonalTopK
	}

	results, err := s.ports.CRAG.SearchPersonal(ctx, input.UserID, input.Query, limit)
	if err != nil {
		return nil, PersonalSearchOutput{}, err
	}

	return nil, PersonalSearchOutput{
		Results: toDocumentOutputs(results),
		Count:   len(results),
	}, nil
}

// handleStoreDocument handles the store_document tool invocation.
func (s *Server) handleStoreDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StoreDocumentInput,
) (*mcp.CallToolResult, StoreDocumentOutput, error) {
	id, err := s.ports.Document.Store(ctx, input.DocumentID, input.Text, input.Metadata)
	if err != nil {
		return nil, StoreDocumentOutput{}, err
	}

	return nil, StoreDocumentOutput{DocumentID: id}, nil
}

func toDocumentOutputs(results []domain.RetrievalResult) []DocumentOutput {
	outputs := make([]DocumentOutput, len(results))
	for i := range results {
		outputs[i] = DocumentOutput{
			DocumentID: results[i].DocID,
			Title:      results[i].Title,
			Text:       results[i].Text,
			Similarity: results[i].Similarity,
		}
	}
	return outputs
}
