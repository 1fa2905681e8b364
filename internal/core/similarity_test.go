package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubEngine returns canned vectors keyed by input text
type stubEngine struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (e *stubEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	if vec, ok := e.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

// mapCache is a trivial unbounded EmbeddingCache for scorer tests
type mapCache struct {
	entries map[string][]float32
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]float32)}
}

func (c *mapCache) Get(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.entries[text]; ok {
		return vec, nil
	}
	return nil, errors.New("not found")
}

func (c *mapCache) Set(ctx context.Context, text string, vector []float32) error {
	c.entries[text] = vector
	return nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "empty vectors",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
		{
			name:     "mismatched lengths",
			a:        []float32{1, 2},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "zero norm",
			a:        []float32{0, 0},
			b:        []float32{1, 1},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestEmbeddingScorerSelfComparison(t *testing.T) {
	engine := &stubEngine{vectors: map[string][]float32{}}
	scorer := NewEmbeddingScorer(engine, newMapCache(), zap.NewNop())

	// No URLs: the message is compared against itself
	result := scorer.Score(context.Background(), "hello world", nil)

	assert.False(t, result.Degraded)
	assert.InDelta(t, 1.0, result.Score, 1e-6)
	// Second embed for the identical text must come from the cache
	assert.Equal(t, 1, engine.calls)
}

func TestEmbeddingScorerURLComparison(t *testing.T) {
	engine := &stubEngine{vectors: map[string][]float32{
		"check https://a.test and https://b.test": {1, 0},
		"https://a.test https://b.test":           {0, 1},
	}}
	scorer := NewEmbeddingScorer(engine, newMapCache(), zap.NewNop())

	result := scorer.Score(context.Background(),
		"check https://a.test and https://b.test",
		[]string{"https://a.test", "https://b.test"})

	assert.False(t, result.Degraded)
	assert.InDelta(t, 0.0, result.Score, 1e-6)
	assert.Equal(t, 2, engine.calls)
}

func TestEmbeddingScorerDegradesOnFailure(t *testing.T) {
	engine := &stubEngine{err: errors.New("provider unavailable")}
	scorer := NewEmbeddingScorer(engine, newMapCache(), zap.NewNop())

	result := scorer.Score(context.Background(), "some text", nil)

	assert.True(t, result.Degraded)
	assert.Equal(t, 0.0, result.Score)
}

func TestEmbeddingScorerClampsNegativeScores(t *testing.T) {
	engine := &stubEngine{vectors: map[string][]float32{
		"msg":            {1, 0},
		"https://x.test": {-1, 0},
	}}
	scorer := NewEmbeddingScorer(engine, newMapCache(), zap.NewNop())

	result := scorer.Score(context.Background(), "msg", []string{"https://x.test"})

	assert.False(t, result.Degraded)
	assert.Equal(t, 0.0, result.Score)
}

func TestEmbeddingScorerNilCache(t *testing.T) {
	engine := &stubEngine{vectors: map[string][]float32{}}
	scorer := NewEmbeddingScorer(engine, nil, zap.NewNop())

	result := scorer.Score(context.Background(), "hello", nil)

	assert.False(t, result.Degraded)
	assert.InDelta(t, 1.0, result.Score, 1e-6)
	// Without a cache both embeds hit the engine
	assert.Equal(t, 2, engine.calls)
}
