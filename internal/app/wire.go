//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solbuild/internal/adapters"
	"github.com/trebuchet-org/solbuild/internal/adapters/fs"
	"github.com/trebuchet-org/solbuild/internal/adapters/progress"
	"github.com/trebuchet-org/solbuild/internal/adapters/project"
	"github.com/trebuchet-org/solbuild/internal/config"
	"github.com/trebuchet-org/solbuild/internal/logging"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Runtime configuration, including the loaded build document
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewBuildContracts,
		usecase.NewCheckNetwork,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,
		usecase.NewListBuilds,
		usecase.NewShowBuild,

		// App
		NewApp,
	)
	return nil, nil
}

// InitScaffolder wires the init use case, which runs before any build
// document exists
func InitScaffolder() *usecase.InitProject {
	wire.Build(
		fs.NewFileWriterAdapter,
		wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),
		project.NewRendererAdapter,
		wire.Bind(new(usecase.DocumentRenderer), new(*project.RendererAdapter)),
		progress.NewNopSink,
		usecase.NewInitProject,
	)
	return nil
}
