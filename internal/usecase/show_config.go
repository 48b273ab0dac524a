package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Build *config.BuildConfig

	// Local defaults from .solbuild/config.local.json
	Local       *config.LocalConfig
	LocalPath   string
	LocalExists bool
}

// ShowConfig is a use case for showing the loaded build configuration
type ShowConfig struct {
	cfg   *config.RuntimeConfig
	store LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		cfg:   cfg,
		store: store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	result := &ShowConfigResult{
		Build:       uc.cfg.Build,
		LocalPath:   uc.store.GetPath(),
		LocalExists: uc.store.Exists(),
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}
	result.Local = local

	return result, nil
}
