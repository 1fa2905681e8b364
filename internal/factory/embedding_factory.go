package factory

import (
	"fmt"

	"github.com/mikey/phish-triage/internal/adapters/embedding/bedrock"
	"github.com/mikey/phish-triage/internal/adapters/embedding/gemini"
	"github.com/mikey/phish-triage/internal/adapters/embedding/openai"
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/utils"
	"go.uber.org/zap"
)

// EmbeddingFactory creates embedding engines
type EmbeddingFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEmbeddingFactory creates a new embedding factory
func NewEmbeddingFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *EmbeddingFactory {
	return &EmbeddingFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEmbeddingEngine creates an embedding engine based on the configuration
func (f *EmbeddingFactory) CreateEmbeddingEngine() (core.EmbeddingEngine, error) {
	embeddingCfg := f.cfg.GetEmbedding()

	switch embeddingCfg.Provider {
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateEmbeddingEngine()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateEmbeddingEngine()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateEmbeddingEngine()
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", embeddingCfg.Provider)
	}
}
