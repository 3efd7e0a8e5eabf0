package refresh

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
)

// Request is the configuration snapshot taken when a refresh is triggered.
type Request struct {
	ID          string
	StartYear   int
	EndYear     int
	Scenario    carbon.BudgetScenario
	RequestedAt time.Time
}

// NewRequest builds a Request for the window [startYear, now.Year()], with
// startYear clamped to [carbon.MinStartYear, now.Year()].
func NewRequest(startYear int, scenario carbon.BudgetScenario, now time.Time) Request {
	endYear := now.Year()
	return Request{
		ID:          ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		StartYear:   carbon.ClampStartYear(startYear, endYear),
		EndYear:     endYear,
		Scenario:    scenario,
		RequestedAt: now,
	}
}

// Result is the single outcome of one accepted Request. Err is nil on
// success, in which case Snapshot and Emissions hold the fetched data.
type Result struct {
	Request   Request
	Snapshot  carbon.ConcentrationSnapshot
	Emissions carbon.EmissionsSeries
	Err       error
	Duration  time.Duration
}

// OK reports whether the refresh succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Metrics derives the display metrics using the parameters of the request
// that produced this result.
func (r Result) Metrics() carbon.Metrics {
	return carbon.Derive(r.Snapshot, r.Emissions, r.Request.Scenario, r.Request.StartYear, r.Request.EndYear)
}
