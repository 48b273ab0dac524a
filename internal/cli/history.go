package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solbuild/internal/cli/render"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Long: `List builds recorded in .solbuild/builds.db, newest first. Builds are only
recorded when db.enabled = true in the build document. By default only
builds for the active network are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListBuildsParams{Limit: limit}
			if !all {
				params.Network = app.Config.Build.ActiveName()
			}

			result, err := app.ListBuilds.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of builds to show (0 for all)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show builds for every network")

	cmd.AddCommand(NewHistoryShowCmd())

	return cmd
}

// NewHistoryShowCmd creates the history show command
func NewHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded build and its sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowBuild.Run(cmd.Context(), usecase.ShowBuildParams{ID: args[0]})
			if err != nil {
				return err
			}

			return render.NewHistoryRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderBuild(result)
		},
	}
}
