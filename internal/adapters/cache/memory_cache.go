package cache

import (
	"container/list"
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a cache entry is not found
var ErrNotFound = errors.New("cache entry not found")

// DefaultCapacity bounds the embedding cache at 200 distinct texts.
const DefaultCapacity = 200

// MemoryCache is an in-memory LRU implementation of the EmbeddingCache
// interface. The recency list is updated on Get, so reads take the same
// lock as writes.
type MemoryCache struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	mu       sync.Mutex
	logger   *zap.Logger
}

type memoryEntry struct {
	key    string
	vector []float32
}

// NewMemoryCache creates a new in-memory LRU cache
func NewMemoryCache(capacity int, logger *zap.Logger) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		logger:   logger,
	}
}

// Get retrieves a cached vector and promotes the entry to most recently used
func (c *MemoryCache) Get(ctx context.Context, text string) ([]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[text]
	if !ok {
		return nil, ErrNotFound
	}

	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).vector, nil
}

// Set stores a vector, evicting the least-recently-used entry when the
// cache is at capacity
func (c *MemoryCache) Set(ctx context.Context, text string, vector []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[text]; ok {
		el.Value.(*memoryEntry).vector = vector
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[text] = c.order.PushFront(&memoryEntry{key: text, vector: vector})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			entry := oldest.Value.(*memoryEntry)
			c.order.Remove(oldest)
			delete(c.entries, entry.key)
			c.logger.Debug("Evicted least recently used embedding",
				zap.Int("evicted_text_len", len(entry.key)),
				zap.Int("capacity", c.capacity))
		}
	}

	return nil
}

// Len returns the number of cached entries
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
