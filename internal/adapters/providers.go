package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/solbuild/internal/adapters/blockchain"
	"github.com/trebuchet-org/solbuild/internal/adapters/db"
	"github.com/trebuchet-org/solbuild/internal/adapters/fs"
	"github.com/trebuchet-org/solbuild/internal/adapters/progress"
	"github.com/trebuchet-org/solbuild/internal/adapters/project"
	"github.com/trebuchet-org/solbuild/internal/adapters/solc"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewSourceScannerAdapter,
	wire.Bind(new(usecase.SourceScanner), new(*fs.SourceScannerAdapter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// SolcSet provides the compiler implementation
var SolcSet = wire.NewSet(
	solc.NewSolcAdapter,
	wire.Bind(new(usecase.Compiler), new(*solc.SolcAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.NetworkChecker), new(*blockchain.CheckerAdapter)),
)

// DBSet provides the build ledger
var DBSet = wire.NewSet(
	db.NewLedgerAdapter,
	wire.Bind(new(usecase.BuildLedger), new(*db.LedgerAdapter)),
)

// ProjectSet provides project scaffolding implementations
var ProjectSet = wire.NewSet(
	project.NewRendererAdapter,
	wire.Bind(new(usecase.DocumentRenderer), new(*project.RendererAdapter)),
)

// ProgressSet picks the progress sink for the invocation
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	SolcSet,
	BlockchainSet,
	DBSet,
	ProjectSet,
	ProgressSet,
)
