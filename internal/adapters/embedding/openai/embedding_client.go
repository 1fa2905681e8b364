package openai

import (
	"context"
	"fmt"

	"github.com/mikey/phish-triage/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// EmbeddingClient is an implementation of the EmbeddingEngine interface
// using the OpenAI embeddings API
type EmbeddingClient struct {
	client        *openai.Client
	model         string
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEmbeddingClient creates a new OpenAI embedding client
func NewEmbeddingClient(
	client *openai.Client,
	model string,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *EmbeddingClient {
	return &EmbeddingClient{
		client:        client,
		model:         model,
		maxInputSize:  maxInputSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Embed returns the embedding vector for the given text
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	processed := c.textProcessor.ProcessText(text, c.maxInputSize)

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{processed},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding with OpenAI: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response from OpenAI")
	}

	c.logger.Debug("Computed embedding",
		zap.String("model", c.model),
		zap.Int("dimensions", len(resp.Data[0].Embedding)))

	return resp.Data[0].Embedding, nil
}
