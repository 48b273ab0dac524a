package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solbuild/internal/cli/render"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the active network and the installed compiler",
		Long: `Contact the active profile's node and compare the network ID it reports
(net_version) with network_id from the build document. Profiles with
network_id = "*" accept any node. The installed solc version is compared
with compilers.solc.version as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, checkErr := app.CheckNetwork.Run(cmd.Context())
			if result == nil {
				return checkErr
			}

			renderer := render.NewCheckRenderer(cmd.OutOrStdout(), app.Config.JSON)
			if err := renderer.Render(result, checkErr); err != nil {
				return err
			}
			return checkErr
		},
	}
}
