package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/logging"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/metrics"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/refresh"
)

const (
	defaultWatchInterval = time.Hour
	readHeaderTimeout    = 5 * time.Second
	shutdownTimeout      = 5 * time.Second
)

type watchFlags struct {
	selectorFlags
	interval    time.Duration
	metricsAddr string
	cycles      int
}

func newWatchCmd() *cobra.Command {
	var flags watchFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh on a schedule and log every result",
		Long: `Runs headless: refreshes immediately and then on every interval, printing
one line per completed cycle. With --metrics-addr the latest figures and
refresh counters are served for Prometheus at /metrics.

Stops on SIGINT/SIGTERM, or after --cycles completed refreshes. Exits with
status 2 when the last completed refresh failed.`,
		Example: `  co2-monitor watch --interval 30m
  co2-monitor watch --metrics-addr :9464
  co2-monitor watch --cycles 1 --budget 66`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&flags.interval, "interval", 0,
		"time between refreshes (default from config auto_refresh, else 1h)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address, e.g. :9464")
	cmd.Flags().IntVar(&flags.cycles, "cycles", 0, "stop after this many completed refreshes (0 runs until interrupted)")
	return cmd
}

func runWatch(cmd *cobra.Command, flags watchFlags) error {
	cfg := config.GetGlobalConfig()
	scenario, startYear, err := flags.resolve(cmd, cfg, time.Now())
	if err != nil {
		return err
	}
	interval, err := watchInterval(cmd, cfg, flags)
	if err != nil {
		return err
	}
	if flags.cycles < 0 {
		return fmt.Errorf("--cycles must be >= 0, got %d", flags.cycles)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logging.ComponentLogger(logger, "watch")
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	coord := refresh.NewCoordinator(
		newSourceClient(cfg, log),
		refresh.WithLogger(log),
		refresh.WithRecorder(recorder),
		refresh.WithContext(ctx),
	)

	var (
		completed int
		lastErr   error
	)
	out := cmd.OutOrStdout()
	loop := refresh.NewLoop(coord, refresh.LoopConfig{
		Build: func() refresh.Request {
			return refresh.NewRequest(startYear, scenario, time.Now())
		},
		OnResult: func(res refresh.Result) {
			completed++
			lastErr = res.Err
			if res.OK() {
				m := res.Metrics()
				recorder.ObserveMetrics(m, time.Now())
				_, _ = fmt.Fprintln(out, summaryLine(m))
			} else {
				log.Error().Err(res.Err).Str("request_id", res.Request.ID).Msg("refresh failed")
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed: %v\n", res.Err)
			}
			if flags.cycles > 0 && completed >= flags.cycles {
				cancel()
			}
		},
		Logger: log,
	})

	sched, err := refresh.NewScheduler(interval, loop.Trigger, log)
	if err != nil {
		return err
	}

	if flags.metricsAddr != "" {
		stop, serveErr := serveMetrics(flags.metricsAddr, reg, log)
		if serveErr != nil {
			return serveErr
		}
		defer stop()
	}

	log.Info().
		Dur("interval", interval).
		Str("budget", scenario.Key()).
		Int("start_year", startYear).
		Msg("watching")

	loop.Trigger()
	sched.Start()
	defer func() {
		if stopErr := sched.Stop(); stopErr != nil {
			log.Warn().Err(stopErr).Msg("scheduler shutdown")
		}
	}()

	if runErr := loop.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if lastErr != nil {
		return newFetchExitError(lastErr)
	}
	return nil
}

func watchInterval(cmd *cobra.Command, cfg *config.Config, flags watchFlags) (time.Duration, error) {
	if cmd.Flags().Changed("interval") {
		if flags.interval <= 0 {
			return 0, fmt.Errorf("--interval must be positive, got %s", flags.interval)
		}
		return flags.interval, nil
	}
	interval, err := cfg.AutoRefreshInterval()
	if err != nil {
		return 0, err
	}
	if interval <= 0 {
		return defaultWatchInterval, nil
	}
	return interval, nil
}

// serveMetrics starts the /metrics listener and returns a function that
// shuts it down.
func serveMetrics(addr string, g prometheus.Gatherer, log zerolog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Error().Err(serveErr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// summaryLine renders one watch result on a single line.
func summaryLine(m carbon.Metrics) string {
	return fmt.Sprintf("%s  %s  mass=%s  above=%s  used=%s  remaining=%s  budget=%s%%",
		m.Date.Format("2006-01-02"),
		carbon.FormatPPM(m.LatestPPM),
		carbon.FormatGt(m.AtmosphericMass, 0),
		carbon.FormatPPM(m.AboveBaseline),
		carbon.FormatGt(m.BudgetUsed, 1),
		carbon.FormatGt(m.BudgetRemaining, 1),
		m.Scenario.Key(),
	)
}
