package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solbuild/internal/app"
	"github.com/trebuchet-org/solbuild/internal/cli/render"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter solbuild.toml and contracts directory",
		Long: `Create solbuild.toml with a development profile for a local Ganache node
(127.0.0.1:7545, network_id 5777) and an empty contracts directory.
An existing solbuild.toml is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.InitScaffolder().Run(cmd.Context(), usecase.InitProjectParams{
				Dir:   dir,
				Force: force,
			})
			if result != nil {
				_ = render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing solbuild.toml")

	return cmd
}
