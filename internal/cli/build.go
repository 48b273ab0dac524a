package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solbuild/internal/cli/render"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var (
		verifyNetwork bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the contracts directory with solc",
		Long: `Compile every .sol file under contracts_directory with the solc settings
from the build document and write artifacts to contracts_build_directory.

With --verify-network the active profile's node is contacted first and its
network ID compared with network_id. With db.enabled = true every build is
recorded in .solbuild/builds.db.`,
		Example: `  solbuild build
  solbuild build --network live --verify-network
  solbuild build --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.BuildParams{
				DryRun:        app.Config.DryRun,
				VerifyNetwork: verifyNetwork,
			}

			result, err := app.BuildContracts.Run(cmd.Context(), params)
			if result != nil {
				renderer := render.NewBuildRenderer(cmd.OutOrStdout(), app.Config.JSON, verbose || app.Config.Debug)
				if renderErr := renderer.Render(result); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print the solc command without compiling")
	cmd.Flags().BoolVar(&verifyNetwork, "verify-network", false, "Check the node's network ID before compiling")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List sources and artifacts")

	return cmd
}
