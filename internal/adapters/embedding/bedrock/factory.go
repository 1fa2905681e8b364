package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates Bedrock embedding clients
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEmbeddingEngine creates a new Bedrock embedding client
func (f *Factory) CreateEmbeddingEngine() (core.EmbeddingEngine, error) {
	bedrockCfg := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(bedrockCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg)

	return NewEmbeddingClient(
		client,
		bedrockCfg.ModelID,
		bedrockCfg.MaxInputSize,
		f.logger,
		f.textProcessor,
	), nil
}
