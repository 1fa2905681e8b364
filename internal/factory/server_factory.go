package factory

import (
	"fmt"

	"github.com/mikey/phish-triage/internal/adapters/server"
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/ports"
	"go.uber.org/zap"
)

// ServerFactory creates message servers based on configuration
type ServerFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.TriageService
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger, service *core.TriageService) *ServerFactory {
	return &ServerFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateMessageServer creates a message server based on the configuration
func (f *ServerFactory) CreateMessageServer() (ports.MessageServer, error) {
	serverType := f.cfg.GetString("server.type")

	switch serverType {
	case "http":
		return server.NewHTTPServer(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
		), nil
	case "postfix":
		return server.NewPostfixServer(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetBool("server.block_phishing"),
			f.cfg.GetString("server.headers.status"),
			f.cfg.GetString("server.headers.confidence"),
			f.cfg.GetString("server.headers.reason"),
			f.cfg.GetString("server.postfix.address"),
			f.cfg.GetInt("server.postfix.port"),
			f.cfg.GetBool("server.postfix.enabled"),
		), nil
	case "cli":
		return server.NewCLIServer(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported server type: %s", serverType)
	}
}
