// Package metrics exposes refresh-cycle counters and the latest derived CO2
// metrics as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
)

const namespace = "co2monitor"

// Refresh outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
	OutcomeError        = "error"
)

// Recorder records refresh activity. A nil *Recorder is a no-op.
type Recorder struct {
	refreshesStarted   prometheus.Counter
	refreshesIgnored   prometheus.Counter
	refreshesCompleted *prometheus.CounterVec
	refreshDuration    prometheus.Histogram

	latestPPM       prometheus.Gauge
	atmosphericMass prometheus.Gauge
	aboveBaseline   prometheus.Gauge
	budgetUsed      prometheus.Gauge
	budgetRemaining prometheus.Gauge
	lastSuccess     prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		refreshesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_started_total",
			Help:      "Refresh cycles accepted by the coordinator.",
		}),
		refreshesIgnored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_ignored_total",
			Help:      "Refresh triggers dropped because a cycle was already in flight.",
		}),
		refreshesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_completed_total",
			Help:      "Refresh cycles that produced a result, by outcome.",
		}, []string{"outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Wall time of the fetch sequence of one refresh cycle.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}),
		latestPPM: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "latest_ppm",
			Help:      "Latest valid daily mean CO2 concentration in ppm.",
		}),
		atmosphericMass: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "atmospheric_mass_gtco2",
			Help:      "CO2 mass in the atmosphere derived from the latest concentration.",
		}),
		aboveBaseline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "above_preindustrial_ppm",
			Help:      "Latest concentration minus the 280 ppm pre-industrial reference.",
		}),
		budgetUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "budget_used_gtco2",
			Help:      "Cumulative global emissions since the budget start year.",
		}),
		budgetRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "budget_remaining_gtco2",
			Help:      "Selected carbon budget minus cumulative emissions; negative means overshoot.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful refresh.",
		}),
	}

	reg.MustRegister(
		r.refreshesStarted,
		r.refreshesIgnored,
		r.refreshesCompleted,
		r.refreshDuration,
		r.latestPPM,
		r.atmosphericMass,
		r.aboveBaseline,
		r.budgetUsed,
		r.budgetRemaining,
		r.lastSuccess,
	)
	return r
}

// RefreshStarted counts an accepted refresh trigger.
func (r *Recorder) RefreshStarted() {
	if r == nil {
		return
	}
	r.refreshesStarted.Inc()
}

// RefreshIgnored counts a trigger dropped by the in-flight guard.
func (r *Recorder) RefreshIgnored() {
	if r == nil {
		return
	}
	r.refreshesIgnored.Inc()
}

// RefreshCompleted records the outcome and duration of one cycle.
func (r *Recorder) RefreshCompleted(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.refreshesCompleted.WithLabelValues(outcome).Inc()
	r.refreshDuration.Observe(d.Seconds())
}

// ObserveMetrics publishes the derived metrics of a successful refresh.
func (r *Recorder) ObserveMetrics(m carbon.Metrics, at time.Time) {
	if r == nil {
		return
	}
	r.latestPPM.Set(m.LatestPPM)
	r.atmosphericMass.Set(m.AtmosphericMass)
	r.aboveBaseline.Set(m.AboveBaseline)
	r.budgetUsed.Set(m.BudgetUsed)
	r.budgetRemaining.Set(m.BudgetRemaining)
	r.lastSuccess.Set(float64(at.Unix()))
}

// Handler returns an HTTP handler serving the collectors of g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
