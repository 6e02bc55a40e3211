// Package embedding exposes the text-embedding capability used by the scorer:
// mapping strings to fixed-dimension vectors and comparing them by cosine
// similarity.
package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrUnavailable indicates the embedding backend is not configured or cannot
// be reached. Callers must surface it rather than defaulting scores.
var ErrUnavailable = errors.New("embedding service unavailable")

// Service maps one or more texts to fixed-dimension numeric vectors. Results
// are deterministic for a given model version. Implementations must be safe
// for concurrent use.
type Service interface {
	// EmbedStrings encodes all texts in a single batched call and returns one
	// vector per input, in input order.
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// Cosine returns the cosine similarity between two vectors. Mismatched or
// zero-magnitude vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
