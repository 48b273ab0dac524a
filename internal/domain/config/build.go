package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"net"
	"slices"
	"strconv"
)

// NetworkProfile is a named set of connection parameters for one chain endpoint
type NetworkProfile struct {
	Name      string
	Host      string
	Port      int
	NetworkID uint64
	// AnyNetwork is set for network_id = "*", which matches whatever the node reports
	AnyNetwork bool
}

// RPCURL returns the JSON-RPC endpoint for this profile
func (n NetworkProfile) RPCURL() string {
	return "http://" + net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
}

// NetworkIDString renders the network ID the way it appears in the document
func (n NetworkProfile) NetworkIDString() string {
	if n.AnyNetwork {
		return "*"
	}
	return strconv.FormatUint(n.NetworkID, 10)
}

// CompilerSettings parameterizes the external solc compiler
type CompilerSettings struct {
	// Version is empty when the document doesn't pin one; the solc on PATH is used then
	Version          string
	OptimizerEnabled bool
	// OptimizerRuns is only passed to solc when OptimizerEnabled is true
	OptimizerRuns int64
	EVMVersion    string
}

// BuildConfig is the validated, immutable result of loading a build document.
// It is constructed once per invocation by the config loader and only exposes
// value getters, so consumers can share a single instance freely.
type BuildConfig struct {
	source             string
	contractsDirectory string
	contractsPath      string
	buildDirectory     string
	buildPath          string
	networks           map[string]NetworkProfile
	active             string
	compiler           CompilerSettings
	dbEnabled          bool
}

// BuildConfigParams carries the already validated values used to construct a BuildConfig
type BuildConfigParams struct {
	Source             string
	ContractsDirectory string
	ContractsPath      string
	BuildDirectory     string
	BuildPath          string
	Networks           map[string]NetworkProfile
	Active             string
	Compiler           CompilerSettings
	DBEnabled          bool
}

// NewBuildConfig creates a BuildConfig. The active profile must be present in Networks.
func NewBuildConfig(p BuildConfigParams) (*BuildConfig, error) {
	if _, ok := p.Networks[p.Active]; !ok {
		return nil, fmt.Errorf("active network %q not present in networks", p.Active)
	}
	return &BuildConfig{
		source:             p.Source,
		contractsDirectory: p.ContractsDirectory,
		contractsPath:      p.ContractsPath,
		buildDirectory:     p.BuildDirectory,
		buildPath:          p.BuildPath,
		networks:           maps.Clone(p.Networks),
		active:             p.Active,
		compiler:           p.Compiler,
		dbEnabled:          p.DBEnabled,
	}, nil
}

// Source returns the absolute path of the document the config was loaded from
func (c *BuildConfig) Source() string { return c.source }

// ContractsDirectory returns contracts_directory as written in the document
func (c *BuildConfig) ContractsDirectory() string { return c.contractsDirectory }

// ContractsPath returns the resolved absolute contracts directory
func (c *BuildConfig) ContractsPath() string { return c.contractsPath }

// BuildDirectory returns contracts_build_directory as written (or defaulted)
func (c *BuildConfig) BuildDirectory() string { return c.buildDirectory }

// BuildPath returns the resolved absolute artifact output directory
func (c *BuildConfig) BuildPath() string { return c.buildPath }

// Networks returns a copy of every declared network profile
func (c *BuildConfig) Networks() map[string]NetworkProfile { return maps.Clone(c.networks) }

// NetworkNames returns the declared profile names in sorted order
func (c *BuildConfig) NetworkNames() []string {
	return slices.Sorted(maps.Keys(c.networks))
}

// Network looks up a declared profile by name
func (c *BuildConfig) Network(name string) (NetworkProfile, bool) {
	n, ok := c.networks[name]
	return n, ok
}

// Active returns the profile selected at load time
func (c *BuildConfig) Active() NetworkProfile { return c.networks[c.active] }

// ActiveName returns the name of the profile selected at load time
func (c *BuildConfig) ActiveName() string { return c.active }

// Compiler returns the solc settings
func (c *BuildConfig) Compiler() CompilerSettings { return c.compiler }

// DBEnabled reports whether builds are recorded in the build database
func (c *BuildConfig) DBEnabled() bool { return c.dbEnabled }

type networkJSON struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	NetworkID string `json:"network_id"`
	Active    bool   `json:"active,omitempty"`
}

type optimizerJSON struct {
	Enabled bool  `json:"enabled"`
	Runs    int64 `json:"runs"`
}

type solcJSON struct {
	Version    string        `json:"version,omitempty"`
	EVMVersion string        `json:"evmVersion,omitempty"`
	Optimizer  optimizerJSON `json:"optimizer"`
}

type buildConfigJSON struct {
	Source                  string                 `json:"source"`
	ActiveNetwork           string                 `json:"active_network"`
	Networks                map[string]networkJSON `json:"networks"`
	ContractsDirectory      string                 `json:"contracts_directory"`
	ContractsBuildDirectory string                 `json:"contracts_build_directory"`
	Compilers               struct {
		Solc solcJSON `json:"solc"`
	} `json:"compilers"`
	DB struct {
		Enabled bool `json:"enabled"`
	} `json:"db"`
}

// MarshalJSON renders the config using the document's key names
func (c *BuildConfig) MarshalJSON() ([]byte, error) {
	out := buildConfigJSON{
		Source:                  c.source,
		ActiveNetwork:           c.active,
		Networks:                make(map[string]networkJSON, len(c.networks)),
		ContractsDirectory:      c.contractsDirectory,
		ContractsBuildDirectory: c.buildDirectory,
	}
	for name, n := range c.networks {
		out.Networks[name] = networkJSON{
			Host:      n.Host,
			Port:      n.Port,
			NetworkID: n.NetworkIDString(),
			Active:    name == c.active,
		}
	}
	out.Compilers.Solc = solcJSON{
		Version:    c.compiler.Version,
		EVMVersion: c.compiler.EVMVersion,
		Optimizer: optimizerJSON{
			Enabled: c.compiler.OptimizerEnabled,
			Runs:    c.compiler.OptimizerRuns,
		},
	}
	out.DB.Enabled = c.dbEnabled
	return json.Marshal(out)
}
