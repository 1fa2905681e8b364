package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteCache is a SQLite implementation of the EmbeddingCache interface.
// Recency is tracked in a last_used column; entries beyond capacity are
// evicted least-recently-used first, both on Set and by a background task.
type SQLiteCache struct {
	db          *sql.DB
	capacity    int
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteCache creates a new SQLite-backed embedding cache
func NewSQLiteCache(dbPath string, capacity int, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS embedding_cache (
			text_key TEXT PRIMARY KEY,
			vector TEXT,
			last_used TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Index on last_used for faster eviction
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_last_used ON embedding_cache(last_used)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	cache := &SQLiteCache{
		db:          db,
		capacity:    capacity,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background eviction
	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached vector and refreshes its last_used timestamp
func (c *SQLiteCache) Get(ctx context.Context, text string) ([]float32, error) {
	var encoded string
	err := c.db.QueryRowContext(ctx, `
		SELECT vector FROM embedding_cache WHERE text_key = ?
	`, text).Scan(&encoded)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
		return nil, fmt.Errorf("failed to decode cached vector: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, `
		UPDATE embedding_cache SET last_used = ? WHERE text_key = ?
	`, time.Now().UTC().Format(time.RFC3339Nano), text); err != nil {
		c.logger.Warn("Failed to refresh cache entry recency", zap.Error(err))
	}

	return vector, nil
}

// Set stores a vector and evicts entries beyond capacity
func (c *SQLiteCache) Set(ctx context.Context, text string, vector []float32) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO embedding_cache (text_key, vector, last_used)
		VALUES (?, ?, ?)
	`, text, string(encoded), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return c.evict(ctx)
}

// evict removes everything but the most recently used capacity entries
func (c *SQLiteCache) evict(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM embedding_cache
		WHERE text_key NOT IN (
			SELECT text_key FROM embedding_cache
			ORDER BY last_used DESC
			LIMIT ?
		)
	`, c.capacity)
	if err != nil {
		return fmt.Errorf("failed to evict cache entries: %w", err)
	}

	if evicted, err := result.RowsAffected(); err == nil && evicted > 0 {
		c.logger.Debug("Evicted least recently used embeddings", zap.Int64("evicted_count", evicted))
	}

	return nil
}

// startCleanupTask periodically enforces the capacity bound
func (c *SQLiteCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.evict(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background eviction task and closes the database connection
func (c *SQLiteCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
