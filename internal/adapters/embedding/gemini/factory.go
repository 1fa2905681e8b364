package gemini

import (
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of EmbeddingClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for Gemini embedding clients
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEmbeddingEngine creates a new Gemini embedding client
func (f *Factory) CreateEmbeddingEngine() (core.EmbeddingEngine, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewEmbeddingClient(
		geminiCfg.APIKey,
		geminiCfg.Model,
		geminiCfg.MaxInputSize,
		f.logger,
		f.textProcessor,
	)
}
