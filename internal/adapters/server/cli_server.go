package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mikey/phish-triage/internal/core"
	"go.uber.org/zap"
)

// CLIServer implements a command-line interface for one-shot triage
type CLIServer struct {
	service *core.TriageService
	logger  *zap.Logger
	verbose bool
}

// NewCLIServer creates a new CLI transport
func NewCLIServer(service *core.TriageService, logger *zap.Logger, verbose bool) (*CLIServer, error) {
	return &CLIServer{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessMessage triages the message text and prints the results
func (s *CLIServer) ProcessMessage(ctx context.Context, message string) (*core.Verdict, error) {
	s.logger.Debug("Processing message", zap.Int("bytes", len(message)))

	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Length: %d bytes\n", len(message))

	if s.verbose {
		preview := message
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nPreview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	verdict := s.service.Analyze(ctx, message)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Verdict: %s\n", verdict.Label)
	fmt.Printf("Confidence: %s\n", verdict.Confidence)
	if len(verdict.URLs) > 0 {
		fmt.Printf("URLs: %v\n", verdict.URLs)
		fmt.Printf("Domains: %v\n", verdict.Domains)
	}
	if len(verdict.Keywords) > 0 {
		fmt.Printf("Keywords: %v\n", verdict.Keywords)
	}
	fmt.Printf("Similarity score: %.4f\n", verdict.Score)
	if verdict.Degraded {
		fmt.Printf("Note: similarity scoring was unavailable; verdict is keyword-only\n")
	}
	fmt.Printf("Explanation:\n%s\n", verdict.Explanation)
	fmt.Printf("Processing time: %v\n", duration)

	return verdict, nil
}

// Start is a no-op for the CLI transport
func (s *CLIServer) Start() error {
	return nil
}

// Stop is a no-op for the CLI transport
func (s *CLIServer) Stop() error {
	return nil
}
