package usecase

import (
	"context"
	"math/big"

	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
)

// SourceScanner finds the Solidity sources of a contracts directory
type SourceScanner interface {
	// Scan returns the sources sorted by path and an aggregate hash over all of them
	Scan(ctx context.Context, dir string) ([]models.SourceFile, string, error)
}

// CompileRequest carries everything the compiler needs for one run
type CompileRequest struct {
	ContractsDir string
	OutputDir    string
	Sources      []models.SourceFile
	Settings     config.CompilerSettings
}

// CompileResult is the outcome of a compiler run
type CompileResult struct {
	Artifacts []string
	Output    string
}

// Compiler wraps the external solc binary
type Compiler interface {
	// Version returns the installed compiler version, e.g. "0.8.19+commit.7dd6d404"
	Version(ctx context.Context) (string, error)
	Compile(ctx context.Context, req CompileRequest) (*CompileResult, error)
	// Args returns the command line Compile would run, for dry runs
	Args(req CompileRequest) []string
}

// NodeInfo describes what a chain node reports about itself
type NodeInfo struct {
	NetworkID   *big.Int
	ChainID     *big.Int
	BlockNumber uint64
}

// NetworkChecker talks to the chain node behind a network profile
type NetworkChecker interface {
	Probe(ctx context.Context, rpcURL string) (*NodeInfo, error)
}

// BuildFilter narrows ledger queries
type BuildFilter struct {
	Network string
	Limit   int
}

// BuildLedger persists build runs
type BuildLedger interface {
	Record(ctx context.Context, build *models.Build) error
	List(ctx context.Context, filter BuildFilter) ([]*models.Build, error)
	Get(ctx context.Context, id string) (*models.Build, error)
}

// LocalConfigStore handles the per-checkout defaults file
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// FileWriter handles file system operations for project scaffolding
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
	EnsureDirectory(ctx context.Context, path string) error
}

// DocumentRenderer renders a starter build document
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, tmpl DocumentTemplate) ([]byte, error)
}

// NetworkSelector handles interactive selection of network profiles
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, names []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
