package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/di"
	"github.com/mikey/phish-triage/internal/ports"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(runCheck); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// runCheck reads the message text and triages it once
func runCheck(
	flags *di.CLIFlags,
	logger *zap.Logger,
	messageServer ports.MessageServer,
	engine core.EmbeddingEngine,
) error {
	defer logger.Sync()

	var reader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading message from file", zap.String("file", flags.InputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	messageBytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read message", zap.Error(err))
	}

	verdict, err := messageServer.ProcessMessage(context.Background(), string(messageBytes))
	if err != nil {
		logger.Fatal("Failed to triage message", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := engine.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close embedding engine", zap.Error(err))
		}
	}

	// Exit non-zero for phishing so shell pipelines can branch on it
	if verdict.Label == core.LabelPhishing {
		os.Exit(2)
	}
	return nil
}
