package mcp

import (
	"context"

	"github.com/quarry-labs/corrag/internal/core/domain"
	"github.com/quarry-labs/corrag/internal/core/ports/driving"
)

// mockCRAGService is a configurable driving.CRAGService.
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

// mockDocumentService is a configurable driving.DocumentService.
type mockDocumentService struct {
	storedID string
	err      error

	lastDocID string
	lastText  string
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

func (m *mockDocumentService) StorePersonal(_ context.Context, _, _, _ string, _ map[string]any) (string, error) {
	return "", m.err
}

func (m *mockDocumentService) Delete(context.Context, string) (bool, error) {
	return false, m.err
}

func (m *mockDocumentService) Clear(context.Context) error {
	return m.err
}

func (m *mockDocumentService) Count(context.Context) (int, error) {
	return 0, m.err
}

func (m *mockDocumentService) ListPreview(context.Context) ([]domain.DocumentPreview, error) {
	return nil, m.err
}
