package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/metrics"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/sources"
)

// Source provides the two datasets a refresh needs.
type Source interface {
	LatestConcentration(ctx context.Context) (carbon.ConcentrationSnapshot, error)
	WorldEmissions(ctx context.Context, startYear, endYear int) (carbon.EmissionsSeries, error)
}

// State is the coordinator's refresh state.
type State int

const (
	// StateIdle accepts a new refresh.
	StateIdle State = iota
	// StateInFlight has a refresh running or a result not yet drained.
	StateInFlight
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNothingInFlight is returned by Wait when no refresh was started.
	ErrNothingInFlight = errors.New("no refresh in flight")
	// ErrWorkerPanic wraps a panic recovered from a source call.
	ErrWorkerPanic = errors.New("refresh worker panicked")
)

// Coordinator runs at most one refresh at a time. See the package docs for
// the ownership rules.
type Coordinator struct {
	source   Source
	results  chan Result
	state    State
	workCtx  context.Context
	logger   zerolog.Logger
	recorder *metrics.Recorder
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for cycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithContext sets the parent context handed to source calls. Its values
// (trace IDs, loggers) are kept but its cancellation is not: an in-flight
// refresh always runs to completion.
func WithContext(ctx context.Context) Option {
	return func(c *Coordinator) { c.workCtx = context.WithoutCancel(ctx) }
}

// NewCoordinator creates an idle Coordinator for source.
func NewCoordinator(source Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:  source,
		results: make(chan Result, 1),
		state:   StateIdle,
		workCtx: context.Background(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a refresh for req if the coordinator is idle and reports
// whether it did. A request arriving while in flight is dropped.
func (c *Coordinator) Start(req Request) bool {
	if c.state == StateInFlight {
		c.recorder.RefreshIgnored()
		c.logger.Debug().Str("request_id", req.ID).Msg("refresh already in flight, trigger ignored")
		return false
	}

	c.state = StateInFlight
	c.recorder.RefreshStarted()
	c.logger.Info().
		Str("request_id", req.ID).
		Int("start_year", req.StartYear).
		Int("end_year", req.EndYear).
		Str("budget", req.Scenario.Key()).
		Msg("refresh started")

	go c.work(req)
	return true
}

// Poll drains a finished result without blocking. Receiving a result
// returns the coordinator to idle.
func (c *Coordinator) Poll() (Result, bool) {
	select {
	case res := <-c.results:
		c.state = StateIdle
		return res, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the in-flight result arrives or ctx is done. Like Poll,
// receiving the result returns the coordinator to idle. Cancelling ctx only
// stops the wait; the refresh keeps running and a later Poll or Wait
// collects it.
func (c *Coordinator) Wait(ctx context.Context) (Result, error) {
	if c.state == StateIdle {
		return Result{}, ErrNothingInFlight
	}
	select {
	case res := <-c.results:
		c.state = StateIdle
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// InFlight reports whether a refresh is running or awaiting drain.
func (c *Coordinator) InFlight() bool {
	return c.state == StateInFlight
}

// State returns the current refresh state.
func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) work(req Request) {
	res := c.execute(req)

	c.recorder.RefreshCompleted(outcome(res.Err), res.Duration)
	event := c.logger.Info()
	if res.Err != nil {
		event = c.logger.Warn().Err(res.Err)
	}
	event.Str("request_id", req.ID).Dur("duration", res.Duration).Msg("refresh finished")

	// Capacity 1 and a single worker per cycle: this send never blocks.
	c.results <- res
}

// execute runs the fetch sequence. The first failure short-circuits.
func (c *Coordinator) execute(req Request) (res Result) {
	start := time.Now()
	res.Request = req

	defer func() {
		if p := recover(); p != nil {
			res = Result{Request: req, Err: fmt.Errorf("%w: %v", ErrWorkerPanic, p)}
		}
		res.Duration = time.Since(start)
	}()

	snap, err := c.source.LatestConcentration(c.workCtx)
	if err != nil {
		res.Err = fmt.Errorf("fetching concentration: %w", err)
		return res
	}

	series, err := c.source.WorldEmissions(c.workCtx, req.StartYear, req.EndYear)
	if err != nil {
		res.Err = fmt.Errorf("fetching emissions: %w", err)
		return res
	}

	res.Snapshot = snap
	res.Emissions = series
	return res
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case sources.IsKind(err, sources.KindNetwork):
		return metrics.OutcomeNetworkError
	case sources.IsKind(err, sources.KindParse):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeError
	}
}
