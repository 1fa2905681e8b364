package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// textKey digests the text into a fixed-width primary key
func textKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// MySQLCache is a MySQL implementation of the EmbeddingCache interface,
// sharing the SQLite cache's schema and LRU eviction semantics.
type MySQLCache struct {
	db          *sql.DB
	capacity    int
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLCache creates a new MySQL-backed embedding cache
func NewMySQLCache(dsn string, capacity int, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Keys are SHA-256 digests of the text: normalized messages routinely
	// exceed InnoDB's index key limit.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS embedding_cache (
			text_key CHAR(64) PRIMARY KEY,
			vector MEDIUMTEXT,
			last_used TIMESTAMP(6),
			INDEX idx_last_used (last_used)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	cache := &MySQLCache{
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
func (c *MySQLCache) Get(ctx context.Context, text string) ([]float32, error) {
	key := textKey(text)

	var encoded string
	err := c.db.QueryRowContext(ctx, `
		SELECT vector FROM embedding_cache WHERE text_key = ?
	`, key).Scan(&encoded)
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
		UPDATE embedding_cache SET last_used = NOW(6) WHERE text_key = ?
	`, key); err != nil {
		c.logger.Warn("Failed to refresh cache entry recency", zap.Error(err))
	}

	return vector, nil
}

// Set stores a vector and evicts entries beyond capacity
func (c *MySQLCache) Set(ctx context.Context, text string, vector []float32) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO embedding_cache (text_key, vector, last_used)
		VALUES (?, ?, NOW(6))
		ON DUPLICATE KEY UPDATE
			vector = VALUES(vector),
			last_used = VALUES(last_used)
	`, textKey(text), string(encoded))
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return c.evict(ctx)
}

// evict removes everything but the most recently used capacity entries.
// MySQL disallows LIMIT inside an IN subquery, hence the derived table.
func (c *MySQLCache) evict(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM embedding_cache
		WHERE text_key NOT IN (
			SELECT text_key FROM (
				SELECT text_key FROM embedding_cache
				ORDER BY last_used DESC
				LIMIT ?
			) AS recent
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
func (c *MySQLCache) startCleanupTask() {
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
func (c *MySQLCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
