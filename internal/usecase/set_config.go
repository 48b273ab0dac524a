package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting local default values
type SetConfig struct {
	cfg   *config.RuntimeConfig
	store LocalConfigStore
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *SetConfig {
	return &SetConfig{
		cfg:   cfg,
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key := strings.ToLower(params.Key)

	if !config.IsValidConfigKey(key) {
		return nil, unknownKeyError(params.Key)
	}

	normalizedKey := config.NormalizeConfigKey(key)

	// A default network must exist in the loaded document
	if normalizedKey == config.ConfigKeyNetwork {
		if _, ok := uc.cfg.Build.Network(params.Value); !ok {
			return nil, domain.NewUnknownNetworkError(params.Value, uc.cfg.Build.NetworkNames())
		}
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch normalizedKey {
	case config.ConfigKeyNetwork:
		local.Network = params.Value
	case config.ConfigKeyConfig:
		local.Config = params.Value
	}

	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: local,
		ConfigPath:    uc.store.GetPath(),
		Key:           normalizedKey,
		Value:         params.Value,
	}, nil
}

func unknownKeyError(key string) error {
	validKeys := []string{}
	for _, k := range config.ValidConfigKeys() {
		if k == config.ConfigKeyNetwork {
			validKeys = append(validKeys, string(k)+" (net)")
		} else {
			validKeys = append(validKeys, string(k))
		}
	}
	return fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(validKeys, ", "))
}
