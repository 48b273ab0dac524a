package usecase

import (
	"context"

	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe dials every profile's node and compares its network ID
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Probed   bool
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Profile config.NetworkProfile
	Active  bool
	Node    *NodeInfo
	Error   error
}

// ListNetworks is a use case for listing declared network profiles
type ListNetworks struct {
	cfg     *config.RuntimeConfig
	checker NetworkChecker
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, checker NetworkChecker) *ListNetworks {
	return &ListNetworks{
		cfg:     cfg,
		checker: checker,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	build := uc.cfg.Build
	names := build.NetworkNames()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		profile, _ := build.Network(name)
		status := NetworkStatus{
			Profile: profile,
			Active:  name == build.ActiveName(),
		}

		if params.Probe {
			info, err := verifyNode(ctx, uc.checker, profile)
			status.Node = info
			status.Error = err
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
		Probed:   params.Probe,
	}, nil
}
