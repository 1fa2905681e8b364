package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/factory"
	"github.com/mikey/phish-triage/internal/logging"
	"github.com/mikey/phish-triage/internal/ports"
	"github.com/mikey/phish-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEmbeddingFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewWhitelistFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register embedding engine
	if err := container.Provide(func(f *factory.EmbeddingFactory) (core.EmbeddingEngine, error) {
		return f.CreateEmbeddingEngine()
	}); err != nil {
		return nil, err
	}

	// Register embedding cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.EmbeddingCache, error) {
		return f.CreateEmbeddingCache()
	}); err != nil {
		return nil, err
	}

	// Register whitelist store
	if err := container.Provide(func(f *factory.WhitelistFactory, logger *zap.Logger) (core.WhitelistStore, error) {
		store, err := f.CreateWhitelistStore()
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded whitelist", zap.Int("domains", store.Size()))
		return store, nil
	}); err != nil {
		return nil, err
	}

	// Register similarity scorer
	if err := container.Provide(func(
		engine core.EmbeddingEngine,
		cache core.EmbeddingCache,
		logger *zap.Logger,
	) core.SimilarityScorer {
		return core.NewEmbeddingScorer(engine, cache, logger)
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		whitelist core.WhitelistStore,
		scorer core.SimilarityScorer,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.TriageService {
		triageCfg := cfg.GetTriage()
		return core.NewTriageService(
			whitelist,
			scorer,
			logger,
			triageCfg.PhishingSimilarity,
			triageCfg.SuspiciousSimilarity,
		)
	}); err != nil {
		return nil, err
	}

	// Register message server
	if err := container.Provide(func(f *factory.ServerFactory) (ports.MessageServer, error) {
		return f.CreateMessageServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
