package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
)

// BuildParams contains parameters for a build run
type BuildParams struct {
	DryRun        bool
	VerifyNetwork bool
}

// BuildResult contains the result of a build run
type BuildResult struct {
	Build            *models.Build
	InstalledVersion string
	Node             *NodeInfo
	// Command is the compiler invocation; only set for dry runs
	Command   []string
	Artifacts []string
	Recorded  bool
}

// BuildContracts compiles the contracts directory with the configured solc settings
type BuildContracts struct {
	cfg      *config.RuntimeConfig
	scanner  SourceScanner
	compiler Compiler
	checker  NetworkChecker
	ledger   BuildLedger
	progress ProgressSink
	log      *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewBuildContracts creates a new BuildContracts use case
func NewBuildContracts(
	cfg *config.RuntimeConfig,
	scanner SourceScanner,
	compiler Compiler,
	checker NetworkChecker,
	ledger BuildLedger,
	progress ProgressSink,
	log *slog.Logger,
) *BuildContracts {
	return &BuildContracts{
		cfg:      cfg,
		scanner:  scanner,
		compiler: compiler,
		checker:  checker,
		ledger:   ledger,
		progress: progress,
		log:      log.With("component", "BuildContracts"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run executes the use case
func (uc *BuildContracts) Run(ctx context.Context, params BuildParams) (*BuildResult, error) {
	build := uc.cfg.Build
	active := build.Active()
	settings := build.Compiler()

	record := &models.Build{
		ID:               uc.newID(),
		Network:          active.Name,
		NetworkID:        active.NetworkIDString(),
		CompilerVersion:  settings.Version,
		OptimizerEnabled: settings.OptimizerEnabled,
		OptimizerRuns:    settings.OptimizerRuns,
		ContractsDir:     build.ContractsDirectory(),
		OutputDir:        build.BuildDirectory(),
		StartedAt:        uc.now(),
	}
	result := &BuildResult{Build: record}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "scan", Message: "Scanning contracts", Spinner: true})
	sources, hash, err := uc.scanner.Scan(ctx, build.ContractsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", build.ContractsDirectory(), err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoSources, build.ContractsDirectory())
	}
	record.Sources = sources
	record.SourcesHash = hash
	uc.log.Debug("scanned sources", "count", len(sources), "hash", hash)

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "compiler", Message: "Checking solc", Spinner: true})
	installed, err := uc.compiler.Version(ctx)
	switch {
	case err != nil && !params.DryRun:
		return nil, fmt.Errorf("failed to query solc version: %w", err)
	case err != nil:
		uc.log.Warn("solc not available, skipping version check", "error", err)
	case settings.Version != "" && !CompilerVersionMatches(settings.Version, installed):
		return nil, fmt.Errorf("%w: configured %s, installed %s", domain.ErrCompilerMismatch, settings.Version, installed)
	}
	result.InstalledVersion = installed
	if record.CompilerVersion == "" {
		record.CompilerVersion = installed
	}

	if params.VerifyNetwork {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "network", Message: fmt.Sprintf("Checking %s", active.Name), Spinner: true})
		node, err := verifyNode(ctx, uc.checker, active)
		if err != nil {
			return nil, err
		}
		result.Node = node
	}

	req := CompileRequest{
		ContractsDir: build.ContractsPath(),
		OutputDir:    build.BuildPath(),
		Sources:      sources,
		Settings:     settings,
	}

	if params.DryRun {
		result.Command = uc.compiler.Args(req)
		record.Status = models.BuildStatusDryRun
		record.FinishedAt = uc.now()
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done", Message: "Dry run complete"})
		return result, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "compile", Message: fmt.Sprintf("Compiling %d sources", len(sources)), Spinner: true})
	compiled, compileErr := uc.compiler.Compile(ctx, req)
	record.FinishedAt = uc.now()
	if compileErr != nil {
		record.Status = models.BuildStatusFailed
		record.Error = compileErr.Error()
	} else {
		record.Status = models.BuildStatusSucceeded
		result.Artifacts = compiled.Artifacts
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done", Message: "Compilation finished"})

	if build.DBEnabled() {
		if err := uc.ledger.Record(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record build: %w", err)
		}
		result.Recorded = true
	}

	if compileErr != nil {
		return result, fmt.Errorf("compilation failed: %w", compileErr)
	}
	return result, nil
}

// CompilerVersionMatches reports whether an installed solc version satisfies
// the configured one. Versions match on their X.Y.Z core; when the configured
// version pins build metadata (+commit.xxxx) the installed one must carry it too.
func CompilerVersionMatches(configured, installed string) bool {
	if versionCore(configured) != versionCore(installed) {
		return false
	}
	if i := strings.IndexByte(configured, '+'); i != -1 {
		return strings.HasPrefix(installed, configured)
	}
	return true
}

func versionCore(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "+-"); i != -1 {
		v = v[:i]
	}
	return v
}

// verifyNode probes the node behind a profile and compares its network ID
func verifyNode(ctx context.Context, checker NetworkChecker, profile config.NetworkProfile) (*NodeInfo, error) {
	info, err := checker.Probe(ctx, profile.RPCURL())
	if err != nil {
		return nil, fmt.Errorf("failed to reach network %s at %s: %w", profile.Name, profile.RPCURL(), err)
	}
	if err := matchNetworkID(profile, info); err != nil {
		return info, err
	}
	return info, nil
}

func matchNetworkID(profile config.NetworkProfile, info *NodeInfo) error {
	if profile.AnyNetwork || info.NetworkID == nil {
		return nil
	}
	if info.NetworkID.IsUint64() && info.NetworkID.Uint64() == profile.NetworkID {
		return nil
	}
	actual := uint64(0)
	if info.NetworkID.IsUint64() {
		actual = info.NetworkID.Uint64()
	}
	return &domain.NetworkMismatchError{
		Network:  profile.Name,
		Expected: profile.NetworkID,
		Actual:   actual,
	}
}
