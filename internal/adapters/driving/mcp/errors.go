package mcp

import "errors"

// Wiring errors returned by Ports.Validate.
var (
	ErrMissingCRAGService     = errors.New("mcp: CRAG service is required")
	ErrMissingDocumentService = errors.New("mcp: document service is required")
)
