package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solbuild/internal/adapters/interactive"
	"github.com/trebuchet-org/solbuild/internal/app"
	"github.com/trebuchet-org/solbuild/internal/config"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cancelKey is the context key for the command timeout's cancel func
	cancelKey contextKey = "cancel"
)

// Execute runs rootCmd and releases the app it wired. Cobra skips post-run
// hooks when a command fails, so the release happens here on every path.
func Execute(rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil {
		if releaseErr := release(cmd); err == nil {
			err = releaseErr
		}
	}
	return err
}

// release cancels the command timeout and closes the app
func release(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	if cancel, ok := ctx.Value(cancelKey).(context.CancelFunc); ok {
		cancel()
	}
	if a, ok := ctx.Value(appKey).(*app.App); ok {
		return a.Close()
	}
	return nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solbuild",
		Short: "Build Solidity contracts against Truffle-style network profiles",
		Long: `solbuild loads a Truffle-style build document (solbuild.toml, .yaml or .json),
selects a network profile and compiles the contracts directory with solc.

The active network comes from --network, SOLBUILD_NETWORK, the local
defaults in .solbuild/config.local.json, or "development", in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipAppInit(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}
			if f := cmd.Flag("config"); f != nil && f.Changed {
				if abs, err := filepath.Abs(f.Value.String()); err == nil {
					projectRoot = filepath.Dir(abs)
				}
			}

			v := config.SetupViper(projectRoot)
			v.Set("project_root", projectRoot)
			bindGlobalFlags(v, cmd)

			appInstance, err := initApp(cmd, v)
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				ctx = context.WithValue(ctx, cancelKey, cancel)
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Build document (default: nearest solbuild.toml/.yaml/.json)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network profile to use (default: development)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	buildCmd := NewBuildCmd()
	buildCmd.GroupID = "main"
	rootCmd.AddCommand(buildCmd)

	checkCmd := NewCheckCmd()
	checkCmd.GroupID = "main"
	rootCmd.AddCommand(checkCmd)

	initCmd := NewInitCmd()
	initCmd.GroupID = "main"
	rootCmd.AddCommand(initCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	historyCmd := NewHistoryCmd()
	historyCmd.GroupID = "management"
	rootCmd.AddCommand(historyCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipAppInit reports whether cmd runs without a loaded build document
func skipAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "init", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// initApp wires the app. When the selected network is not declared and a
// terminal is attached, the user picks one of the declared profiles instead.
func initApp(cmd *cobra.Command, v *viper.Viper) (*app.App, error) {
	appInstance, err := app.InitApp(v)
	if err == nil {
		return appInstance, nil
	}

	var unknown *domain.UnknownNetworkError
	if errors.As(err, &unknown) && len(unknown.Available) > 0 {
		var selector usecase.NetworkSelector = interactive.NewSelectorAdapter(!canPrompt(v))
		prompt := fmt.Sprintf("Network %q is not declared, select one", unknown.Name)
		name, selErr := selector.SelectNetwork(cmd.Context(), unknown.Available, prompt)
		if selErr != nil {
			return nil, err
		}
		v.Set("network", name)
		return app.InitApp(v)
	}

	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w (run 'solbuild init' to create one)", err)
	}
	return nil, err
}

// canPrompt reports whether interactive prompts may be shown
func canPrompt(v *viper.Viper) bool {
	if v.GetBool("non_interactive") || v.GetBool("json") {
		return false
	}
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// viperKeys maps flag names to the viper keys they override
var viperKeys = map[string]string{
	"config":          "config",
	"network":         "network",
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"json":            "json",
	"dry-run":         "dry_run",
}

// bindGlobalFlags copies explicitly set flags into viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := viperKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
