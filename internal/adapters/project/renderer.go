package project

import (
	"bytes"
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

const documentHeader = `# solbuild build configuration
#
# Select a profile with --network or SOLBUILD_NETWORK. Hosts are bare
# hostnames or IPs (no scheme), network_id must match the node's
# net_version, or "*" to accept any node. Values may reference
# environment variables as ${NAME}; .env and .env.local are read too.

`

type networkFile struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	NetworkID uint64 `toml:"network_id"`
}

type optimizerFile struct {
	Enabled bool  `toml:"enabled"`
	Runs    int64 `toml:"runs"`
}

type solcFile struct {
	Version   string        `toml:"version,omitempty"`
	Optimizer optimizerFile `toml:"optimizer"`
}

type compilersFile struct {
	Solc solcFile `toml:"solc"`
}

type dbFile struct {
	Enabled bool `toml:"enabled"`
}

type documentFile struct {
	ContractsDirectory string                 `toml:"contracts_directory"`
	Networks           map[string]networkFile `toml:"networks"`
	Compilers          compilersFile          `toml:"compilers"`
	DB                 dbFile                 `toml:"db"`
}

// RendererAdapter renders starter build documents as TOML
type RendererAdapter struct{}

// NewRendererAdapter creates a new document renderer
func NewRendererAdapter() *RendererAdapter {
	return &RendererAdapter{}
}

// RenderDocument encodes tmpl as a solbuild.toml document
func (r *RendererAdapter) RenderDocument(ctx context.Context, tmpl usecase.DocumentTemplate) ([]byte, error) {
	doc := documentFile{
		ContractsDirectory: tmpl.ContractsDirectory,
		Networks: map[string]networkFile{
			tmpl.NetworkName: {
				Host:      tmpl.Host,
				Port:      tmpl.Port,
				NetworkID: tmpl.NetworkID,
			},
		},
		Compilers: compilersFile{
			Solc: solcFile{
				Version: tmpl.SolcVersion,
				Optimizer: optimizerFile{
					Enabled: tmpl.OptimizerEnabled,
					Runs:    tmpl.OptimizerRuns,
				},
			},
		},
		DB: dbFile{Enabled: tmpl.DBEnabled},
	}

	var buf bytes.Buffer
	buf.WriteString(documentHeader)
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure the adapter implements the interface
var _ usecase.DocumentRenderer = (*RendererAdapter)(nil)
