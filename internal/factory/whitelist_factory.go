package factory

import (
	"github.com/mikey/phish-triage/internal/adapters/whitelist"
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"go.uber.org/zap"
)

// WhitelistFactory creates whitelist stores
type WhitelistFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewWhitelistFactory creates a new whitelist factory
func NewWhitelistFactory(cfg *config.Config, logger *zap.Logger) *WhitelistFactory {
	return &WhitelistFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateWhitelistStore loads the whitelist from the configured sources
func (f *WhitelistFactory) CreateWhitelistStore() (core.WhitelistStore, error) {
	whitelistCfg := f.cfg.GetWhitelist()
	return whitelist.Load(
		whitelistCfg.CSVPath,
		whitelistCfg.SnapshotPath,
		whitelistCfg.Domains,
		f.logger,
	)
}
