package models

import (
	"time"
)

// BuildStatus is the outcome of a build run
type BuildStatus string

const (
	BuildStatusSucceeded BuildStatus = "succeeded"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusDryRun    BuildStatus = "dry_run"
)

// SourceFile is a Solidity source found under the contracts directory
type SourceFile struct {
	// Path is relative to the contracts directory, slash separated
	Path string `json:"path" db:"path"`
	Hash string `json:"hash" db:"hash"`
	Size int64  `json:"size" db:"size"`
}

// Build is one recorded build run
type Build struct {
	ID               string      `json:"id" db:"id"`
	Network          string      `json:"network" db:"network"`
	NetworkID        string      `json:"networkId" db:"network_id"`
	CompilerVersion  string      `json:"compilerVersion" db:"compiler_version"`
	OptimizerEnabled bool        `json:"optimizerEnabled" db:"optimizer_enabled"`
	OptimizerRuns    int64       `json:"optimizerRuns" db:"optimizer_runs"`
	ContractsDir     string      `json:"contractsDir" db:"contracts_dir"`
	OutputDir        string      `json:"outputDir" db:"output_dir"`
	SourcesHash      string      `json:"sourcesHash" db:"sources_hash"`
	Status           BuildStatus `json:"status" db:"status"`
	Error            string      `json:"error,omitempty" db:"error"`
	StartedAt        time.Time   `json:"startedAt" db:"started_at"`
	FinishedAt       time.Time   `json:"finishedAt" db:"finished_at"`

	Sources []SourceFile `json:"sources,omitempty" db:"-"`
}

// Duration returns how long the build took
func (b *Build) Duration() time.Duration {
	if b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}
