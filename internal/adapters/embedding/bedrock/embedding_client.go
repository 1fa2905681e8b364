package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/phish-triage/internal/utils"
	"go.uber.org/zap"
)

// EmbeddingClient is an implementation of the EmbeddingEngine interface
// using Amazon Bedrock Titan embedding models
type EmbeddingClient struct {
	client        *bedrockruntime.Client
	modelID       string
	maxInputSize  int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// titanEmbeddingRequest is the InvokeModel payload for Titan embed models
type titanEmbeddingRequest struct {
	InputText string `json:"inputText"`
}

// titanEmbeddingResponse is the InvokeModel response body
type titanEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewEmbeddingClient creates a new Bedrock embedding client
func NewEmbeddingClient(
	client *bedrockruntime.Client,
	modelID string,
	maxInputSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *EmbeddingClient {
	return &EmbeddingClient{
		client:        client,
		modelID:       modelID,
		maxInputSize:  maxInputSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Embed returns the embedding vector for the given text
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	processed := c.textProcessor.ProcessText(text, c.maxInputSize)

	payload, err := json.Marshal(titanEmbeddingRequest{InputText: processed})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	var titanResp titanEmbeddingResponse
	if err := json.Unmarshal(resp.Body, &titanResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Titan response: %w", err)
	}

	if len(titanResp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response from Titan model")
	}

	c.logger.Debug("Computed embedding",
		zap.String("model", c.modelID),
		zap.Int("dimensions", len(titanResp.Embedding)))

	return titanResp.Embedding, nil
}
