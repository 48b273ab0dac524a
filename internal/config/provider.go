package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

// DataDirName is the per-project directory holding local config and the build database
const DataDirName = ".solbuild"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	configPath := v.GetString("config")

	if configPath == "" {
		found, err := FindConfigFile(projectRoot)
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	// The build document anchors the project
	projectRoot = filepath.Dir(absConfig)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		ConfigPath:     absConfig,
		NetworkName:    v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
		SolcBinary:     v.GetString("solc"),
	}

	build, err := Load(absConfig, cfg.NetworkName)
	if err != nil {
		return nil, err
	}
	cfg.Build = build

	return cfg, nil
}

// FindProjectRoot returns the directory holding the nearest build document,
// falling back to the working directory
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	path, err := FindConfigFile(cwd)
	if err != nil {
		return cwd, nil
	}
	return filepath.Dir(path), nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Local defaults written by `solbuild config set`
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("SOLBUILD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", config.DefaultNetwork)
	v.SetDefault("timeout", "2m")
	v.SetDefault("solc", "solc")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}
