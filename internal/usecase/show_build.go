package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
)

// ShowBuildParams contains parameters for showing a recorded build
type ShowBuildParams struct {
	ID string
}

// ShowBuildResult contains a recorded build with its sources
type ShowBuildResult struct {
	Build *models.Build
}

// ShowBuild is a use case for reading one build from the ledger
type ShowBuild struct {
	cfg    *config.RuntimeConfig
	ledger BuildLedger
}

// NewShowBuild creates a new ShowBuild use case
func NewShowBuild(cfg *config.RuntimeConfig, ledger BuildLedger) *ShowBuild {
	return &ShowBuild{
		cfg:    cfg,
		ledger: ledger,
	}
}

// Run executes the use case
func (uc *ShowBuild) Run(ctx context.Context, params ShowBuildParams) (*ShowBuildResult, error) {
	if !uc.cfg.Build.DBEnabled() {
		return nil, fmt.Errorf("%w: set db.enabled = true in %s to record builds", domain.ErrDBDisabled, uc.cfg.ConfigPath)
	}

	id := strings.TrimSpace(params.ID)
	if id == "" {
		return nil, fmt.Errorf("build id is required")
	}

	build, err := uc.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ShowBuildResult{Build: build}, nil
}
