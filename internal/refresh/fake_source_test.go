package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
)

// fakeSource is a controllable Source. When gate is non-nil,
// LatestConcentration blocks until the gate is closed.
type fakeSource struct {
	mu sync.Mutex

	gate     chan struct{}
	snap     carbon.ConcentrationSnapshot
	series   carbon.EmissionsSeries
	concErr  error
	emisErr  error
	panicMsg string

	concentrationCalls int
	emissionsCalls     int
	gotStart, gotEnd   int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		snap: carbon.ConcentrationSnapshot{
			Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			PPM:  420.7,
		},
		series: carbon.EmissionsSeries{
			{Year: 2020, GtCO2: 35.0},
			{Year: 2021, GtCO2: 36.8},
			{Year: 2022, GtCO2: 37.2},
			{Year: 2023, GtCO2: 37.6},
			{Year: 2024, GtCO2: 37.6},
		},
	}
}

func (f *fakeSource) LatestConcentration(context.Context) (carbon.ConcentrationSnapshot, error) {
	f.mu.Lock()
	f.concentrationCalls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.snap, f.concErr
}

func (f *fakeSource) WorldEmissions(_ context.Context, startYear, endYear int) (carbon.EmissionsSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emissionsCalls++
	f.gotStart, f.gotEnd = startYear, endYear
	return f.series, f.emisErr
}

func (f *fakeSource) calls() (concentration, emissions int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.concentrationCalls, f.emissionsCalls
}

func testRequest() Request {
	return NewRequest(2020, carbon.Budget66, time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
}
