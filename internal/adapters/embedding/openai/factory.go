package openai

import (
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of EmbeddingClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for OpenAI embedding clients
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEmbeddingEngine creates a new OpenAI embedding client
func (f *Factory) CreateEmbeddingEngine() (core.EmbeddingEngine, error) {
	openaiCfg := f.cfg.GetOpenAI()

	client := openai.NewClient(openaiCfg.APIKey)

	return NewEmbeddingClient(
		client,
		openaiCfg.Model,
		openaiCfg.MaxInputSize,
		f.logger,
		f.textProcessor,
	), nil
}
