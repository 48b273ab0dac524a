package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// DefaultProbeTimeout bounds a single node probe
const DefaultProbeTimeout = 5 * time.Second

// CheckerAdapter implements the NetworkChecker interface using ethclient
type CheckerAdapter struct {
	timeout time.Duration
	log     *slog.Logger
}

// NewCheckerAdapter creates a new network checker adapter
func NewCheckerAdapter(log *slog.Logger) *CheckerAdapter {
	return &CheckerAdapter{
		timeout: DefaultProbeTimeout,
		log:     log.With("component", "NetworkChecker"),
	}
}

// Probe connects to the node at rpcURL and reads its network ID, chain ID and
// head block. The network ID comes from net_version, which is what Ganache
// and Truffle's network_id refer to; the chain ID is informational.
func (c *CheckerAdapter) Probe(ctx context.Context, rpcURL string) (*usecase.NodeInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	networkID, err := client.NetworkID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network ID: %w", err)
	}
	info := &usecase.NodeInfo{NetworkID: networkID}

	// Older nodes don't implement eth_chainId
	if chainID, err := client.ChainID(ctx); err == nil {
		info.ChainID = chainID
	} else {
		c.log.Debug("chain ID unavailable", "url", rpcURL, "error", err)
	}

	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get block number: %w", err)
	}
	info.BlockNumber = blockNumber

	c.log.Debug("probed node", "url", rpcURL, "networkId", networkID, "block", blockNumber)
	return info, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkChecker = (*CheckerAdapter)(nil)
