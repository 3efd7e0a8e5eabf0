package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/logging"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/refresh"
)

// Output formats accepted by snapshot.
const (
	outputTable = "table"
	outputJSON  = "json"
)

const tabPadding = 2

type snapshotFlags struct {
	selectorFlags
	output string
}

func newSnapshotCmd() *cobra.Command {
	var flags snapshotFlags

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch once and print the five figures",
		Long: `Runs a single refresh cycle and prints the result. Exits with status 2 when
either dataset cannot be fetched or parsed.`,
		Example: `  co2-monitor snapshot
  co2-monitor snapshot --budget 66 --start-year 2015 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputTable, "output format: table or json")
	return cmd
}

func runSnapshot(cmd *cobra.Command, flags snapshotFlags) error {
	output := strings.ToLower(flags.output)
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("unsupported output format: %s", flags.output)
	}

	cfg := config.GetGlobalConfig()
	now := time.Now()
	scenario, startYear, err := flags.resolve(cmd, cfg, now)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.ComponentLogger(logger, "snapshot")
	coord := refresh.NewCoordinator(
		newSourceClient(cfg, log),
		refresh.WithLogger(log),
		refresh.WithContext(ctx),
	)

	coord.Start(refresh.NewRequest(startYear, scenario, now))
	res, err := coord.Wait(ctx)
	if err != nil {
		return err
	}
	if !res.OK() {
		return newFetchExitError(res.Err)
	}

	if output == outputJSON {
		return renderJSON(cmd.OutOrStdout(), res.Metrics())
	}
	return renderTable(cmd.OutOrStdout(), res.Metrics())
}

func renderJSON(w io.Writer, m carbon.Metrics) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderTable(w io.Writer, m carbon.Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "Metric\tValue\tNote")
	fmt.Fprintln(tw, "------\t-----\t----")
	fmt.Fprintf(tw, "Latest CO₂\t%s\tNOAA Mauna Loa daily mean, %s\n",
		carbon.FormatPPM(m.LatestPPM), m.Date.Format("2006-01-02"))
	fmt.Fprintf(tw, "CO₂ in atmosphere\t%s\t%.2f × %.5f GtCO₂/ppm\n",
		carbon.FormatGt(m.AtmosphericMass, 0), m.LatestPPM, carbon.PPMToGtCO2)
	fmt.Fprintf(tw, "Above pre-industrial\t%s\trelative to %.0f ppm\n",
		carbon.FormatPPM(m.AboveBaseline), carbon.PreindustrialPPM)
	fmt.Fprintf(tw, "Budget used\t%s\tOWID world emissions %d–%d\n",
		carbon.FormatGt(m.BudgetUsed, 1), m.StartYear, m.EndYear)

	note := m.Scenario.Label()
	if m.Overshoot() {
		note += " (overshoot)"
	}
	fmt.Fprintf(tw, "Budget remaining\t%s\t%s\n", carbon.FormatGt(m.BudgetRemaining, 1), note)

	return tw.Flush()
}
