package core

import (
	"context"
)

// EmbeddingEngine defines the interface for producing text embeddings
type EmbeddingEngine interface {
	// Embed returns the embedding vector for the given text
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingCache defines the interface for caching embedding vectors
type EmbeddingCache interface {
	// Get retrieves a cached vector for a text; any error is treated as a miss
	Get(ctx context.Context, text string) ([]float32, error)

	// Set stores a vector for a text
	Set(ctx context.Context, text string, vector []float32) error
}

// WhitelistStore is an immutable set of known-safe registrable domains,
// populated before the first Analyze call.
type WhitelistStore interface {
	// Contains reports whether the registrable domain is whitelisted
	Contains(domain string) bool

	// Size returns the number of whitelisted domains
	Size() int
}

// SimilarityScorer scores the semantic closeness between a message and the
// URLs it carries (or the message itself when it carries none).
type SimilarityScorer interface {
	Score(ctx context.Context, normalizedText string, urls []string) SimilarityResult
}
