package services

import (
	"math"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// CosineSimilarity computes the normalised dot product of two vectors,
// range [-1, 1]. Similarity with a zero vector is defined as 0.
// Vectors of unequal length cannot be compared and return
// domain.ErrDimensionMismatch.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// averageSimilarity returns the mean similarity across results, 0 for
// an empty set. Used by the heuristic evaluation fallback.
func averageSimilarity(docs []domain.RetrievalResult) float64 {
	if len(docs) == 0 {
		return 0
	}
	var sum float64
	for i := range docs {
		sum += docs[i].Similarity
	}
	return sum / float64(len(docs))
}
