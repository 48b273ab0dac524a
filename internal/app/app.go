package app

import (
	"log/slog"

	"github.com/trebuchet-org/solbuild/internal/adapters/db"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	BuildContracts *usecase.BuildContracts
	CheckNetwork   *usecase.CheckNetwork
	ListNetworks   *usecase.ListNetworks
	ShowConfig     *usecase.ShowConfig
	SetConfig      *usecase.SetConfig
	RemoveConfig   *usecase.RemoveConfig
	ListBuilds     *usecase.ListBuilds
	ShowBuild      *usecase.ShowBuild

	ledger *db.LedgerAdapter
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	ledger *db.LedgerAdapter,
	buildContracts *usecase.BuildContracts,
	checkNetwork *usecase.CheckNetwork,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	listBuilds *usecase.ListBuilds,
	showBuild *usecase.ShowBuild,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		BuildContracts: buildContracts,
		CheckNetwork:   checkNetwork,
		ListNetworks:   listNetworks,
		ShowConfig:     showConfig,
		SetConfig:      setConfig,
		RemoveConfig:   removeConfig,
		ListBuilds:     listBuilds,
		ShowBuild:      showBuild,
		ledger:         ledger,
	}, nil
}

// Close releases the build database if a command opened it
func (a *App) Close() error {
	return a.ledger.Close()
}
