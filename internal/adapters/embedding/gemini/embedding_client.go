package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/phish-triage/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// EmbeddingClient is an implementation of the EmbeddingEngine interface
// using Google Gemini embedding models
type EmbeddingClient struct {
	client        *genai.Client
	model         *genai.EmbeddingModel
	modelName     string
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEmbeddingClient creates a new Gemini embedding client
func NewEmbeddingClient(
	apiKey string,
	modelName string,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*EmbeddingClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &EmbeddingClient{
		client:        client,
		model:         client.EmbeddingModel(modelName),
		modelName:     modelName,
		maxInputSize:  maxInputSize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client
func (c *EmbeddingClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Embed returns the embedding vector for the given text
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	processed := c.textProcessor.ProcessText(text, c.maxInputSize)

	resp, err := c.model.EmbedContent(ctx, genai.Text(processed))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content with Gemini: %w", err)
	}

	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding response from Gemini")
	}

	c.logger.Debug("Computed embedding",
		zap.String("model", c.modelName),
		zap.Int("dimensions", len(resp.Embedding.Values)))

	return resp.Embedding.Values, nil
}
