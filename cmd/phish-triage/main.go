package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/di"
	"github.com/mikey/phish-triage/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	messageServer ports.MessageServer,
	engine core.EmbeddingEngine,
	embeddingCache core.EmbeddingCache,
) error {
	defer logger.Sync()

	// Start the server
	if err := messageServer.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the server
	if err := messageServer.Stop(); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := engine.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close embedding engine", zap.Error(err))
		}
	}

	// Stop the cache if needed
	if stopper, ok := embeddingCache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
