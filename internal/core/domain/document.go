package domain

import "time"

// Document represents a stored knowledge item with its embedding.
// It is the unit of retrievable knowledge.
type Document struct {
	// ID is the unique identifier, user-supplied or generated.
	// It is the upsert key: storing a document with an existing ID
	// replaces the previous record.
	ID string

	// OwnerID scopes the document to a single user. Empty means the
	// document belongs to the shared collection. Personal documents
	// are stored in a separate logical collection and are never
	// cross-joined with the shared one.
	OwnerID string

	// Title is an optional human-readable title. Personal documents
	// (session summaries) usually carry one; shared documents may not.
	Title string

	// Text is the full content. It is never truncated in storage;
	// truncation only ever happens for embedding purposes.
	Text string

	// Embedding is the vector representation used for similarity
	// scoring. Its dimensionality depends on which embedding path
	// produced it (real backend vs local fallback).
	Embedding []float32

	// Metadata contains arbitrary key-value pairs (source filename,
	// upload time, owner scope, etc).
	Metadata map[string]any

	// CreatedAt is set at creation and never mutated.
	CreatedAt time.Time
}

// HasValidEmbedding reports whether the document carries a non-empty
// embedding vector. Documents without one are skipped during scoring,
// not reported as errors.
func (d Document) HasValidEmbedding() bool {
	return len(d.Embedding) > 0
}

// PreviewLength is the number of characters of text included in
// document previews returned by list operations.
const PreviewLength = 200

// DocumentPreview is a truncated view of a stored document, used by
// list operations so callers never pull full text by accident.
type DocumentPreview struct {
	// DocID is the document identifier.
	DocID string

	// Preview is the first PreviewLength characters of the text,
	// suffixed with an ellipsis when truncated.
	Preview string

	// Title is the document title, if any.
	Title string

	// Metadata contains the stored metadata bag.
	Metadata map[string]any

	// CreatedAt is the document creation time.
	CreatedAt time.Time
}

// Preview builds the truncated list view of a document.
func (d Document) Preview() DocumentPreview {
	text := d.Text
	if len(text) > PreviewLength {
		text = text[:PreviewLength] + "..."
	}
	return DocumentPreview{
		DocID:     d.ID,
		Preview:   text,
		Title:     d.Title,
		Metadata:  d.Metadata,
		CreatedAt: d.CreatedAt,
	}
}
