package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// MockSourceScanner is a mock implementation of SourceScanner
type MockSourceScanner struct {
	mock.Mock
}

func (m *MockSourceScanner) Scan(ctx context.Context, dir string) ([]models.SourceFile, string, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]models.SourceFile), args.String(1), args.Error(2)
}

// MockCompiler is a mock implementation of Compiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCompiler) Compile(ctx context.Context, req usecase.CompileRequest) (*usecase.CompileResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CompileResult), args.Error(1)
}

func (m *MockCompiler) Args(req usecase.CompileRequest) []string {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// MockNetworkChecker is a mock implementation of NetworkChecker
type MockNetworkChecker struct {
	mock.Mock
}

func (m *MockNetworkChecker) Probe(ctx context.Context, rpcURL string) (*usecase.NodeInfo, error) {
	args := m.Called(ctx, rpcURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.NodeInfo), args.Error(1)
}

// MockBuildLedger is a mock implementation of BuildLedger
type MockBuildLedger struct {
	mock.Mock
}

func (m *MockBuildLedger) Record(ctx context.Context, build *models.Build) error {
	args := m.Called(ctx, build)
	return args.Error(0)
}

func (m *MockBuildLedger) List(ctx context.Context, filter usecase.BuildFilter) ([]*models.Build, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Build), args.Error(1)
}

func (m *MockBuildLedger) Get(ctx context.Context, id string) (*models.Build, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Build), args.Error(1)
}

// memoryConfigStore keeps the local config in memory
type memoryConfigStore struct {
	cfg    *config.LocalConfig
	exists bool
	saves  int
}

func (s *memoryConfigStore) Exists() bool { return s.exists }

func (s *memoryConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	if s.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	c := *s.cfg
	return &c, nil
}

func (s *memoryConfigStore) Save(ctx context.Context, cfg *config.LocalConfig) error {
	c := *cfg
	s.cfg = &c
	s.exists = true
	s.saves++
	return nil
}

func (s *memoryConfigStore) GetPath() string { return "/project/.solbuild/config.local.json" }

// recordingProgress collects progress events
type recordingProgress struct {
	events []usecase.ProgressEvent
}

func (p *recordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.events = append(p.events, event)
}
func (p *recordingProgress) Info(string)  {}
func (p *recordingProgress) Error(string) {}

func (p *recordingProgress) stages() []string {
	stages := make([]string, 0, len(p.events))
	for _, e := range p.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

type runtimeOption func(*config.BuildConfigParams)

func withDB() runtimeOption {
	return func(p *config.BuildConfigParams) { p.DBEnabled = true }
}

func withSolcVersion(v string) runtimeOption {
	return func(p *config.BuildConfigParams) { p.Compiler.Version = v }
}

func withActive(name string) runtimeOption {
	return func(p *config.BuildConfigParams) { p.Active = name }
}

// newRuntime returns a config with development (5777) and live (1) profiles
func newRuntime(t *testing.T, opts ...runtimeOption) *config.RuntimeConfig {
	t.Helper()

	params := config.BuildConfigParams{
		Source:             "/project/solbuild.toml",
		ContractsDirectory: "./contracts",
		ContractsPath:      "/project/contracts",
		BuildDirectory:     "./build/contracts",
		BuildPath:          "/project/build/contracts",
		Networks: map[string]config.NetworkProfile{
			"development": {Name: "development", Host: "127.0.0.1", Port: 7545, NetworkID: 5777},
			"live":        {Name: "live", Host: "mainnet.example.org", Port: 8545, NetworkID: 1},
			"anything":    {Name: "anything", Host: "localhost", Port: 8545, AnyNetwork: true},
		},
		Active: "development",
		Compiler: config.CompilerSettings{
			Version:          "0.8.19",
			OptimizerEnabled: true,
			OptimizerRuns:    200,
		},
	}
	for _, opt := range opts {
		opt(&params)
	}

	build, err := config.NewBuildConfig(params)
	require.NoError(t, err)

	return &config.RuntimeConfig{
		ProjectRoot: "/project",
		DataDir:     "/project/.solbuild",
		ConfigPath:  params.Source,
		NetworkName: params.Active,
		Build:       build,
	}
}
