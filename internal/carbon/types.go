package carbon

import "time"

// ConcentrationSnapshot is the most recent valid daily mean CO2 concentration.
type ConcentrationSnapshot struct {
	// Date is the calendar date of the measurement (UTC midnight).
	Date time.Time `json:"date"`

	// PPM is the daily mean concentration in parts per million.
	PPM float64 `json:"ppm"`
}

// AnnualEmissions is one year of global CO2 emissions.
type AnnualEmissions struct {
	Year  int     `json:"year"`
	GtCO2 float64 `json:"gtco2"`
}

// EmissionsSeries is a sequence of annual emissions ordered ascending by year.
type EmissionsSeries []AnnualEmissions

// Metrics is the display-ready result of one successful refresh.
type Metrics struct {
	LatestPPM       float64        `json:"latest_ppm"`
	Date            time.Time      `json:"date"`
	AtmosphericMass float64        `json:"atmospheric_mass_gtco2"`
	AboveBaseline   float64        `json:"above_baseline_ppm"`
	Scenario        BudgetScenario `json:"scenario"`
	BudgetTotal     float64        `json:"budget_total_gtco2"`
	BudgetUsed      float64        `json:"budget_used_gtco2"`
	BudgetRemaining float64        `json:"budget_remaining_gtco2"`
	StartYear       int            `json:"start_year"`
	EndYear         int            `json:"end_year"`
}

// Overshoot reports whether cumulative emissions exceed the selected budget.
func (m Metrics) Overshoot() bool {
	return m.BudgetRemaining < 0
}
