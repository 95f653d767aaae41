package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caserma-ovest/turnivvf/cmd/cli/commands"
	"github.com/caserma-ovest/turnivvf/internal/config"
	"github.com/caserma-ovest/turnivvf/internal/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turni",
		Short: "Duty shift planner for a volunteer fire station",
		Long:  `A CLI tool for planning yearly duty shifts: roster validation, seeded schedule generation and export.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment suffix for the config file (e.g. test)")

	// Add all commands
	rootCmd.AddCommand(commands.GenerateCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ListPersonnelCmd(appRef()))
	rootCmd.AddCommand(commands.ShowCalendarCmd(appRef()))
	rootCmd.AddCommand(commands.InteractiveCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared context pointer; its fields are filled in by
// initApp before any RunE executes.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger and config
func initApp() error {
	var err error
	a := appRef()
	a.Ctx = context.Background()

	// Initialize logger
	a.Logger, err = logging.Init(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.Logger.Debug("Starting application")

	// Load configuration
	a.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Logger.Debug("Configuration loaded successfully")

	return nil
}
