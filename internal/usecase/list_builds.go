package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
)

// ListBuildsParams contains parameters for listing recorded builds
type ListBuildsParams struct {
	Network string
	Limit   int
}

// ListBuildsResult contains the result of listing recorded builds
type ListBuildsResult struct {
	Builds []*models.Build
}

// ListBuilds is a use case for reading the build ledger
type ListBuilds struct {
	cfg    *config.RuntimeConfig
	ledger BuildLedger
}

// NewListBuilds creates a new ListBuilds use case
func NewListBuilds(cfg *config.RuntimeConfig, ledger BuildLedger) *ListBuilds {
	return &ListBuilds{
		cfg:    cfg,
		ledger: ledger,
	}
}

// Run executes the use case
func (uc *ListBuilds) Run(ctx context.Context, params ListBuildsParams) (*ListBuildsResult, error) {
	if !uc.cfg.Build.DBEnabled() {
		return nil, fmt.Errorf("%w: set db.enabled = true in %s to record builds", domain.ErrDBDisabled, uc.cfg.ConfigPath)
	}

	builds, err := uc.ledger.List(ctx, BuildFilter{
		Network: params.Network,
		Limit:   params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}

	return &ListBuildsResult{Builds: builds}, nil
}
