package core

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"
)

// EmbeddingScorer implements SimilarityScorer on top of an EmbeddingEngine
// with a shared, bounded embedding cache. The cache is the only mutable
// state shared across invocations; it may be nil to disable caching.
type EmbeddingScorer struct {
	engine EmbeddingEngine
	cache  EmbeddingCache
	logger *zap.Logger
}

// NewEmbeddingScorer creates a new embedding-backed similarity scorer
func NewEmbeddingScorer(engine EmbeddingEngine, cache EmbeddingCache, logger *zap.Logger) *EmbeddingScorer {
	return &EmbeddingScorer{
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// Score computes the cosine similarity between the message embedding and
// the embedding of its space-joined URLs. A URL-less message is compared
// against itself, which yields 1.0 and acts as the no-signal default. Any
// embedding failure degrades to a 0.0 score instead of propagating.
func (s *EmbeddingScorer) Score(ctx context.Context, normalizedText string, urls []string) SimilarityResult {
	comparison := normalizedText
	if len(urls) > 0 {
		comparison = strings.Join(urls, " ")
	}

	messageVec, err := s.embed(ctx, normalizedText)
	if err != nil {
		s.logger.Warn("Embedding failed, similarity signal degraded to zero", zap.Error(err))
		return SimilarityResult{Score: 0.0, Degraded: true}
	}

	comparisonVec, err := s.embed(ctx, comparison)
	if err != nil {
		s.logger.Warn("Embedding failed, similarity signal degraded to zero", zap.Error(err))
		return SimilarityResult{Score: 0.0, Degraded: true}
	}

	score := CosineSimilarity(messageVec, comparisonVec)

	// Policy treats the score as non-negative; clamp the cosine range.
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}

	return SimilarityResult{Score: score}
}

// embed looks the text up in the cache before calling the engine. Cache
// write failures are logged and ignored.
func (s *EmbeddingScorer) embed(ctx context.Context, text string) ([]float32, error) {
	if s.cache != nil {
		if vec, err := s.cache.Get(ctx, text); err == nil {
			s.logger.Debug("Embedding cache hit", zap.Int("text_len", len(text)))
			return vec, nil
		}
	}

	vec, err := s.engine.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, text, vec); err != nil {
			s.logger.Error("Failed to update embedding cache", zap.Error(err))
		}
	}

	return vec, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors:
// dot product divided by the product of magnitudes. Mismatched or empty
// vectors score 0.0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
