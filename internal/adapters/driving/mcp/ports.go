package mcp

import (
	"github.com/quarry-labs/corrag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// CRAG provides the corrective retrieval pipeline.
	CRAG driving.CRAGService

	// Document manages the knowledge base contents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.CRAG == nil {
		return ErrMissingCRAGService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
