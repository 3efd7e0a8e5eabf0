package carbon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAtmosphericMass(t *testing.T) {
	assert.InDelta(t, 0.0, AtmosphericMass(0), 1e-12)
	assert.InDelta(t, PPMToGtCO2, AtmosphericMass(1), 1e-12)
	assert.InDelta(t, 420.7*7.80432, AtmosphericMass(420.7), 1e-9)

	// Linear: f(a+b) == f(a)+f(b).
	assert.InDelta(t, AtmosphericMass(300)+AtmosphericMass(120.7), AtmosphericMass(420.7), 1e-9)
}

func TestAboveBaseline(t *testing.T) {
	assert.InDelta(t, 140.7, AboveBaseline(420.7), 1e-9)
	assert.InDelta(t, -10.0, AboveBaseline(270.0), 1e-9)
	assert.Equal(t, 0.0, AboveBaseline(PreindustrialPPM))
}

func TestBudgetUsed(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		assert.Equal(t, 0.0, BudgetUsed(nil))
		assert.Equal(t, 0.0, BudgetUsed(EmissionsSeries{}))
	})

	t.Run("sums all years", func(t *testing.T) {
		series := EmissionsSeries{
			{Year: 2020, GtCO2: 35.0},
			{Year: 2021, GtCO2: 36.8},
			{Year: 2022, GtCO2: 37.2},
			{Year: 2023, GtCO2: 37.6},
			{Year: 2024, GtCO2: 37.6},
		}
		assert.InDelta(t, 184.2, BudgetUsed(series), 1e-9)
	})
}

func TestBudgetRemaining(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		used  float64
		want  float64
	}{
		{name: "within budget", total: 420, used: 184.2, want: 235.8},
		{name: "exactly spent", total: 420, used: 420, want: 0},
		{name: "overshoot is negative", total: 420, used: 500.5, want: -80.5},
		{name: "nothing used", total: 580, used: 0, want: 580},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BudgetRemaining(tt.total, tt.used), 1e-9)
		})
	}
}

func TestDerive(t *testing.T) {
	snap := ConcentrationSnapshot{
		Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		PPM:  420.7,
	}
	series := EmissionsSeries{
		{Year: 2020, GtCO2: 35.0},
		{Year: 2021, GtCO2: 36.8},
		{Year: 2022, GtCO2: 37.2},
		{Year: 2023, GtCO2: 37.6},
		{Year: 2024, GtCO2: 37.6},
	}

	m := Derive(snap, series, Budget66, 2020, 2024)

	assert.Equal(t, 420.7, m.LatestPPM)
	assert.Equal(t, snap.Date, m.Date)
	assert.InDelta(t, 3283.28, m.AtmosphericMass, 0.01)
	assert.InDelta(t, 140.7, m.AboveBaseline, 1e-9)
	assert.Equal(t, 420.0, m.BudgetTotal)
	assert.InDelta(t, 184.2, m.BudgetUsed, 1e-9)
	assert.InDelta(t, 235.8, m.BudgetRemaining, 1e-9)
	assert.Equal(t, 2020, m.StartYear)
	assert.Equal(t, 2024, m.EndYear)
	assert.False(t, m.Overshoot())
}

func TestClampStartYear(t *testing.T) {
	assert.Equal(t, MinStartYear, ClampStartYear(1850, 2026))
	assert.Equal(t, 2026, ClampStartYear(2100, 2026))
	assert.Equal(t, 2015, ClampStartYear(2015, 2026))
	assert.Equal(t, 1990, ClampStartYear(1990, 2026))
}
