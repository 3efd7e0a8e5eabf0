package cli

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/logging"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/refresh"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/tui"
)

// ErrNotATerminal is returned when the dashboard is started without a TTY.
var ErrNotATerminal = errors.New(`the dashboard needs an interactive terminal; use "co2-monitor snapshot" instead`)

// dashboardFlags are the dashboard's selectors plus its auto-refresh period.
type dashboardFlags struct {
	selectorFlags
	autoRefresh time.Duration
}

func (f *dashboardFlags) register(cmd *cobra.Command) {
	f.selectorFlags.register(cmd)
	cmd.Flags().DurationVar(&f.autoRefresh, "auto-refresh", 0,
		"refresh automatically on this interval, e.g. 1h (default from config, 0 disables)")
}

func newDashboardCmd() *cobra.Command {
	var flags dashboardFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard (default command)",
		Long: `Opens the interactive dashboard. Keys:
  r      refresh
  b      cycle budget scenario
  ←/-    earlier start year
  →/+    later start year
  esc    dismiss error
  ?      toggle help
  q      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runDashboard(cmd *cobra.Command, flags dashboardFlags) error {
	if !isTerminal(os.Stdout) {
		return ErrNotATerminal
	}

	cfg := config.GetGlobalConfig()
	scenario, startYear, err := flags.resolve(cmd, cfg, time.Now())
	if err != nil {
		return err
	}

	interval, err := cfg.AutoRefreshInterval()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("auto-refresh") {
		interval = flags.autoRefresh
	}

	// Log lines written to stderr would tear the alternate screen.
	tuiLogger := zerolog.Nop()
	if logToFile {
		tuiLogger = logging.ComponentLogger(logger, "tui")
	}

	ctx := cmd.Context()
	coord := refresh.NewCoordinator(
		newSourceClient(cfg, tuiLogger),
		refresh.WithLogger(tuiLogger),
		refresh.WithContext(ctx),
	)
	model := tui.NewDashboardModel(coord, tui.DashboardOptions{
		Scenario:    scenario,
		StartYear:   startYear,
		AutoRefresh: interval,
		Logger:      tuiLogger,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
