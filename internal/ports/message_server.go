package ports

import (
	"context"

	"github.com/mikey/phish-triage/internal/core"
)

// MessageServer defines the interface for triage transports
type MessageServer interface {
	// ProcessMessage triages a single block of message text
	ProcessMessage(ctx context.Context, message string) (*core.Verdict, error)

	// Start starts the transport
	Start() error

	// Stop stops the transport
	Stop() error
}
