package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

// CheckNetworkResult contains the result of checking the active network
type CheckNetworkResult struct {
	Network config.NetworkProfile
	Node    *NodeInfo
	// NetworkMatches is false when the node reports a different network ID
	NetworkMatches bool

	CompilerConfigured string
	CompilerInstalled  string
	CompilerMatches    bool
	CompilerError      error
}

// CheckNetwork verifies that the active profile's node is reachable and is
// the chain the document expects. The network ID can only be compared against
// a running node, so this is never done at load time.
type CheckNetwork struct {
	cfg      *config.RuntimeConfig
	checker  NetworkChecker
	compiler Compiler
}

// NewCheckNetwork creates a new CheckNetwork use case
func NewCheckNetwork(cfg *config.RuntimeConfig, checker NetworkChecker, compiler Compiler) *CheckNetwork {
	return &CheckNetwork{
		cfg:      cfg,
		checker:  checker,
		compiler: compiler,
	}
}

// Run executes the use case. A network ID mismatch returns the populated
// result together with a *domain.NetworkMismatchError.
func (uc *CheckNetwork) Run(ctx context.Context) (*CheckNetworkResult, error) {
	active := uc.cfg.Build.Active()
	settings := uc.cfg.Build.Compiler()

	result := &CheckNetworkResult{
		Network:            active,
		CompilerConfigured: settings.Version,
	}

	installed, err := uc.compiler.Version(ctx)
	if err != nil {
		result.CompilerError = err
	} else {
		result.CompilerInstalled = installed
		result.CompilerMatches = settings.Version == "" || CompilerVersionMatches(settings.Version, installed)
	}

	info, err := uc.checker.Probe(ctx, active.RPCURL())
	if err != nil {
		return result, fmt.Errorf("failed to reach network %s at %s: %w", active.Name, active.RPCURL(), err)
	}
	result.Node = info

	if err := matchNetworkID(active, info); err != nil {
		return result, err
	}
	result.NetworkMatches = true

	return result, nil
}
