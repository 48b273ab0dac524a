package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out  io.Writer
	json bool
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer, json bool) *ConfigRenderer {
	return &ConfigRenderer{
		out:  out,
		json: json,
	}
}

// RenderConfig renders the loaded build configuration and local defaults
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if r.json {
		return renderJSON(r.out, result.Build)
	}

	build := result.Build
	active := build.Active()
	compiler := build.Compiler()

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("📋 Build config"))
	fmt.Fprintf(r.out, "Source:     %s\n", pathStyle.Sprint(getRelativePath(build.Source())))
	fmt.Fprintf(r.out, "Network:    %s (%s, network_id %s)\n",
		activeStyle.Sprint(active.Name), active.RPCURL(), active.NetworkIDString())
	fmt.Fprintf(r.out, "Contracts:  %s\n", build.ContractsDirectory())
	fmt.Fprintf(r.out, "Artifacts:  %s\n", build.BuildDirectory())

	version := compiler.Version
	if version == "" {
		version = "(solc on PATH)"
	}
	fmt.Fprintf(r.out, "Solc:       %s\n", version)
	if compiler.OptimizerEnabled {
		fmt.Fprintf(r.out, "Optimizer:  enabled, %d runs\n", compiler.OptimizerRuns)
	} else {
		fmt.Fprintln(r.out, "Optimizer:  disabled")
	}
	if compiler.EVMVersion != "" {
		fmt.Fprintf(r.out, "EVM:        %s\n", compiler.EVMVersion)
	}
	fmt.Fprintf(r.out, "Build DB:   %s\n", enabled(build.DBEnabled()))

	fmt.Fprintln(r.out)
	if !result.LocalExists {
		fmt.Fprintf(r.out, "No local defaults (%s); network defaults to %s\n",
			getRelativePath(result.LocalPath), config.DefaultNetwork)
		return nil
	}

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("📁 Local defaults"))
	fmt.Fprintf(r.out, "Network:    %s\n", result.Local.Network)
	if result.Local.Config != "" {
		fmt.Fprintf(r.out, "Config:     %s\n", result.Local.Config)
	}
	fmt.Fprintf(r.out, "File:       %s\n", getRelativePath(result.LocalPath))

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Reset network to: %s", config.DefaultNetwork)))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s", result.Key)))
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
