// Package cli implements the co2-monitor command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	projectDir string
	debug      bool
}

// rootState is the per-invocation state shared by the root command hooks.
type rootState struct {
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// dashboard.
func NewRootCmd(ver string) *cobra.Command {
	cmd, _ := newRootCmd(ver)
	return cmd
}

// Execute builds the root command and runs it with ctx. The log file is
// closed even when the command fails, since cobra skips PersistentPostRunE
// after a RunE error.
func Execute(ctx context.Context, ver string) error {
	cmd, state := newRootCmd(ver)
	return state.execute(ctx, cmd)
}

func (s *rootState) execute(ctx context.Context, cmd *cobra.Command) error {
	defer func() { _ = s.closeLogs() }()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(ver string) (*cobra.Command, *rootState) {
	var (
		flags     rootFlags
		dashboard dashboardFlags
		state     = &rootState{}
	)

	cmd := &cobra.Command{
		Use:           "co2-monitor",
		Short:         "Track atmospheric CO₂ and the remaining 1.5°C carbon budget",
		Long:          rootLong,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			result := setupLogging(cmd, flags.debug)
			state.logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return state.closeLogs()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, dashboard)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"config file (default $CO2MON_HOME/config.yaml or ~/.co2-monitor/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.projectDir, "project-dir", "",
		"project directory whose .co2-monitor/config.yaml overlays the global config")
	dashboard.register(cmd)

	cmd.AddCommand(newDashboardCmd(), newSnapshotCmd(), newWatchCmd(), newConfigCmd())

	return cmd, state
}

// loadConfig resolves the project directory, loads and validates the
// configuration and installs it globally.
func loadConfig(cmd *cobra.Command, flags rootFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectDir := config.ResolveProjectDir(flags.projectDir, cwd)
	config.SetResolvedProjectDir(projectDir)

	cfg, err := config.LoadWithProjectDir(cmd.Context(), flags.configPath, projectDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

const rootLong = `co2-monitor fetches the latest NOAA Mauna Loa daily CO₂ reading and the
OWID global emissions series, and shows five derived figures: the latest
concentration, the CO₂ mass in the atmosphere, the rise above pre-industrial
levels, and the carbon budget used and remaining since a chosen start year.`

const rootCmdExample = `  # Open the interactive dashboard
  co2-monitor

  # Dashboard with the 66% budget, counting from 2015, refreshing hourly
  co2-monitor dashboard --budget 66 --start-year 2015 --auto-refresh 1h

  # Print the figures once as JSON
  co2-monitor snapshot --output json

  # Refresh every 30 minutes and expose Prometheus metrics
  co2-monitor watch --interval 30m --metrics-addr :9464

  # Write a default configuration file
  co2-monitor config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
