package cli

import (
	"context"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driving"
)

// mockCRAGService is a configurable driving.CRAGService for command
// tests.
type mockCRAGService struct {
	result domain.CRAGResult
	hits   []domain.RetrievalResult
	err    error

	lastQuery      string
	lastCorrection bool
	lastOwnerID    string
	lastK          int
}

var _ driving.CRAGService = (*mockCRAGService)(nil)

func (m *mockCRAGService) PerformCRAG(_ context.Context, query string, enableCorrection bool) domain.CRAGResult {
	m.lastQuery = query
	m.lastCorrection = enableCorrection
	return m.result
}

func (m *mockCRAGService) SearchPersonal(_ context.Context, ownerID, query string, k int) ([]domain.RetrievalResult, error) {
	m.lastOwnerID = ownerID
	m.lastQuery = query
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockDocumentService is a configurable driving.DocumentService for
// command tests.
type mockDocumentService struct {
	storedID string
	previews []domain.DocumentPreview
	count    int
	deleted  bool
	err      error

	lastDocID   string
	lastOwnerID string
	lastText    string
	clearCalls  int
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Store(_ context.Context, docID, text string, _ map[string]any) (string, error) {
	m.lastDocID = docID
	m.lastText = text
	if m.err != nil {
		return "", m.err
	}
	if m.storedID != "" {
		return m.storedID, nil
	}
	return docID, nil
}

func (m *mockDocumentService) StorePersonal(_ context.Context, ownerID, _, text string, _ map[string]any) (string, error) {
	m.lastOwnerID = ownerID
	m.lastText = text
	if m.err != nil {
		return "", m.err
	}
	return m.storedID, nil
}

func (m *mockDocumentService) Delete(_ context.Context, docID string) (bool, error) {
	m.lastDocID = docID
	return m.deleted, m.err
}

func (m *mockDocumentService) Clear(context.Context) error {
	m.clearCalls++
	return m.err
}

func (m *mockDocumentService) Count(context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockDocumentService) ListPreview(context.Context) ([]domain.DocumentPreview, error) {
	return m.previews, m.err
}

// setupTestServices installs mock services and returns a cleanup
// function restoring the previous state.
func setupTestServices() (crag *mockCRAGService, docs *mockDocumentService, cleanup func()) {
	prevCRAG := cragService
	prevDocs := documentService

	crag = &mockCRAGService{
		result: domain.CRAGResult{
			Documents: []domain.RetrievalResult{
				{DocID: "doc-1", Title: "Test Document 1", Text: "dogs are loyal", Similarity: 0.91},
			},
			Context:       "[Document 1]\ndogs are loyal",
			Evaluation:    domain.Evaluation{IsRelevant: true, Score: 0.91, Reason: "on topic"},
			OriginalQuery: "dogs",
		},
		hits: []domain.RetrievalResult{
			{DocID: "note-1", Title: "Session Summary", Text: "my note", Similarity: 0.8},
		},
	}
	docs = &mockDocumentService{
		storedID: "doc-1",
		previews: []domain.DocumentPreview{
			{DocID: "doc-1", Title: "Test Document 1", Preview: "dogs are loyal"},
		},
		count:   1,
		deleted: true,
	}

	cragService = crag
	documentService = docs

	return crag, docs, func() {
		cragService = prevCRAG
		documentService = prevDocs
	}
}
