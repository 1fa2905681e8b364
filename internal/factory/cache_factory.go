package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/phish-triage/internal/adapters/cache"
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates embedding caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEmbeddingCache creates an embedding cache based on the configuration
func (f *CacheFactory) CreateEmbeddingCache() (core.EmbeddingCache, error) {
	cacheType := f.cfg.GetString("cache.type")
	capacity := f.cfg.GetInt("cache.capacity")
	if capacity <= 0 {
		capacity = cache.DefaultCapacity
	}

	switch cacheType {
	case "memory":
		return cache.NewMemoryCache(capacity, f.logger), nil
	case "sqlite":
		cleanupFreq, err := f.cfg.GetDuration("cache.cleanup_frequency")
		if err != nil {
			return nil, fmt.Errorf("invalid cache cleanup frequency: %w", err)
		}
		sqlitePath := f.cfg.GetString("cache.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(sqlitePath, capacity, f.logger, cleanupFreq)
	case "mysql":
		cleanupFreq, err := f.cfg.GetDuration("cache.cleanup_frequency")
		if err != nil {
			return nil, fmt.Errorf("invalid cache cleanup frequency: %w", err)
		}
		mysqlDSN := f.cfg.GetString("cache.mysql_dsn")
		return cache.NewMySQLCache(mysqlDSN, capacity, f.logger, cleanupFreq)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheType)
	}
}
