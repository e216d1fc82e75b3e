package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

func newTestServer(t *testing.T, crag *mockCRAGService, docs *mockDocumentService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{CRAG: crag, Document: docs})
	require.NoError(t, err)
	return server
}

func TestServer_handleQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pipeline result", func(t *testing.T) {
		crag := &mockCRAGService{
			result: domain.CRAGResult{
				Documents: []domain.RetrievalResult{
					{DocID: "doc-1", Title: "Pets", Text: "dogs are loyal", Similarity: 0.91},
				},
				Context:       "[Document 1]\ndogs are loyal",
				Evaluation:    domain.Evaluation{IsRelevant: true, Score: 0.91, Reason: "on topic"},
				OriginalQuery: "dogs",
			},
		}
		server := newTestServer(t, crag, &mockDocumentService{})

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Query: "dogs"})
		require.NoError(t, err)

		assert.Equal(t, "dogs", crag.lastQuery)
		assert.True(t, crag.lastCorrection)
		assert.Equal(t, "[Document 1]\ndogs are loyal", output.Context)
		require.Len(t, output.Documents, 1)
		assert.Equal(t, "doc-1", output.Documents[0].DocumentID)
		assert.Equal(t, 0.91, output.Documents[0].Similarity)
		assert.True(t, output.IsRelevant)
	})

	t.Run("correction can be disabled", func(t *testing.T) {
		crag := &mockCRAGService{}
		server := newTestServer(t, crag, &mockDocumentService{})

		_, _, err := server.handleQuery(ctx, nil, QueryInput{Query: "q", DisableCorrection: true})
		require.NoError(t, err)
		assert.False(t, crag.lastCorrection)
	})

	t.Run("pipeline errors surface in the reason, not as tool errors", func(t *testing.T) {
		crag := &mockCRAGService{
			result: domain.CRAGResult{
				Documents:  []domain.RetrievalResult{},
				Evaluation: domain.Evaluation{Reason: "Error: database locked"},
			},
		}
		server := newTestServer(t, crag, &mockDocumentService{})

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Query: "q"})
		require.NoError(t, err)
		assert.Contains(t, output.Reason, "Error:")
	})
}

func TestServer_handlePersonalSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns results", func(t *testing.T) {
		crag := &mockCRAGService{
			hits: []domain.RetrievalResult{
				{DocID: "note-1", Text: "my note", Similarity: 0.8},
			},
		}
		server := newTestServer(t, crag, &mockDocumentService{})

		_, output, err := server.handlePersonalSearch(ctx, nil, PersonalSearchInput{
			UserID: "user-1",
			Query:  "note",
			Limit:  5,
		})
		require.NoError(t, err)

		assert.Equal(t, "user-1", crag.lastOwnerID)
		assert.Equal(t, 5, crag.lastK)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "note-1", output.Results[0].DocumentID)
	})

	t.Run("default limit", func(t *testing.T) {
		crag := &mockCRAGService{}
		server := newTestServer(t, crag, &mockDocumentService{})

		_, _, err := server.handlePersonalSearch(ctx, nil, PersonalSearchInput{UserID: "u", Query: "q"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPersonalTopK, crag.lastK)
	})

	t.Run("errors propagate", func(t *testing.T) {
		crag := &mockCRAGService{err: errors.New("missing owner")}
		server := newTestServer(t, crag, &mockDocumentService{})

		_, _, err := server.handlePersonalSearch(ctx, nil, PersonalSearchInput{Query: "q"})
		require.Error(t, err)
	})
}

func TestServer_handleStoreDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and returns id", func(t *testing.T) {
		docs := &mockDocumentService{storedID: "generated-id"}
		server := newTestServer(t, &mockCRAGService{}, docs)

		_, output, err := server.handleStoreDocument(ctx, nil, StoreDocumentInput{Text: "content"})
		require.NoError(t, err)

		assert.Equal(t, "content", docs.lastText)
		assert.Equal(t, "generated-id", output.DocumentID)
	})

	t.Run("errors propagate", func(t *testing.T) {
		docs := &mockDocumentService{err: domain.ErrEmptyInput}
		server := newTestServer(t, &mockCRAGService{}, docs)

		_, _, err := server.handleStoreDocument(ctx, nil, StoreDocumentInput{})
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingCRAGService)
	assert.ErrorIs(t, (&Ports{CRAG: &mockCRAGService{}}).Validate(), ErrMissingDocumentService)
	assert.NoError(t, (&Ports{CRAG: &mockCRAGService{}, Document: &mockDocumentService{}}).Validate())
}
