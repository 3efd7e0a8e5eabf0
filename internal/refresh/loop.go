package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is how often a consumer checks for a finished result.
const DefaultPollInterval = 100 * time.Millisecond

// LoopConfig configures a Loop.
type LoopConfig struct {
	// Build snapshots the current configuration into a Request. Called on
	// the loop goroutine for every trigger.
	Build func() Request
	// OnResult handles each drained result on the loop goroutine.
	OnResult func(Result)
	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration
	Logger       zerolog.Logger
}

// Loop owns a Coordinator on a single goroutine for headless use. Triggers
// may come from any goroutine.
type Loop struct {
	coord    *Coordinator
	cfg      LoopConfig
	triggers chan struct{}
}

// NewLoop creates a Loop around coord.
func NewLoop(coord *Coordinator, cfg LoopConfig) *Loop {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.OnResult == nil {
		cfg.OnResult = func(Result) {}
	}
	return &Loop{
		coord:    coord,
		cfg:      cfg,
		triggers: make(chan struct{}, 1),
	}
}

// Trigger asks the loop to start a refresh. It never blocks; a trigger that
// finds one already pending is merged with it.
func (l *Loop) Trigger() {
	select {
	case l.triggers <- struct{}{}:
	default:
	}
}

// Run drives the coordinator until ctx is done and returns ctx.Err().
// A refresh still running at that point finishes in the background and its
// result is discarded.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if l.coord.InFlight() {
				l.cfg.Logger.Debug().Msg("loop stopped with a refresh in flight")
			}
			return ctx.Err()
		case <-l.triggers:
			l.coord.Start(l.cfg.Build())
		case <-ticker.C:
			if res, ok := l.coord.Poll(); ok {
				l.cfg.OnResult(res)
			}
		}
	}
}
