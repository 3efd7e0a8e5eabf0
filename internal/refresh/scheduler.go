package refresh

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Scheduler fires a trigger function on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

// NewScheduler creates a scheduler that calls trigger every interval.
// It does not fire until Start is called.
func NewScheduler(interval time.Duration, trigger func(), logger zerolog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("auto-refresh interval must be positive, got %s", interval)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			logger.Debug().Msg("scheduled refresh trigger")
			trigger()
		}),
		gocron.WithName("co2-auto-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create auto-refresh job: %w", err)
	}

	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start begins firing triggers.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("starting auto-refresh scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for a running trigger to return.
func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("stopping auto-refresh scheduler")
	return s.scheduler.Shutdown()
}
