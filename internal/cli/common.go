package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/sources"
)

// ExitCodeFetchFailure is the process exit code when a refresh fails.
const ExitCodeFetchFailure = 2

// FetchExitError reports a failed refresh with the exit code main should use.
type FetchExitError struct {
	ExitCode int
	Err      error
}

func (e *FetchExitError) Error() string {
	return e.Err.Error()
}

func (e *FetchExitError) Unwrap() error {
	return e.Err
}

func newFetchExitError(err error) *FetchExitError {
	return &FetchExitError{ExitCode: ExitCodeFetchFailure, Err: err}
}

// selectorFlags are the two domain selectors every data command accepts.
type selectorFlags struct {
	budget    string
	startYear int
}

func (f *selectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.budget, "budget", "",
		"carbon budget scenario: 50 or 66 (default from config)")
	cmd.Flags().IntVar(&f.startYear, "start-year", 0,
		fmt.Sprintf("first year counted against the budget, clamped to %d..current year (default from config)",
			carbon.MinStartYear))
}

// resolve merges the flags over the configuration. Start years outside
// [carbon.MinStartYear, now] are clamped.
func (f *selectorFlags) resolve(
	cmd *cobra.Command,
	cfg *config.Config,
	now time.Time,
) (carbon.BudgetScenario, int, error) {
	name := cfg.Dashboard.Budget
	if cmd.Flags().Changed("budget") {
		name = f.budget
	}
	scenario, err := carbon.ParseBudgetScenario(name)
	if err != nil {
		return scenario, 0, err
	}

	year := cfg.Dashboard.StartYear
	if cmd.Flags().Changed("start-year") {
		year = f.startYear
	}
	return scenario, carbon.ClampStartYear(year, now.Year()), nil
}

// newSourceClient builds the HTTP client for both datasets from cfg.
func newSourceClient(cfg *config.Config, log zerolog.Logger) *sources.Client {
	client := sources.NewClient(sources.Options{
		ConcentrationURL: cfg.Sources.ConcentrationURL,
		EmissionsURL:     cfg.Sources.EmissionsURL,
		Timeout:          cfg.Timeout(),
		UserAgent:        cfg.Sources.UserAgent,
		Logger:           log,
	})
	log.Debug().
		Str("concentration_url", client.ConcentrationURL()).
		Str("emissions_url", client.EmissionsURL()).
		Msg("source endpoints")
	return client
}
