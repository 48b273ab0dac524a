package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Document settings
	ConfigPath  string // absolute path of the build document
	NetworkName string // profile requested via flag, env or local config

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	DryRun bool

	// External tools
	SolcBinary string

	// Resolved configuration
	Build *BuildConfig
}
