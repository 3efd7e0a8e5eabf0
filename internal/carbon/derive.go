package carbon

// AtmosphericMass converts a concentration in ppm to GtCO2 held in the atmosphere.
func AtmosphericMass(ppm float64) float64 {
	return ppm * PPMToGtCO2
}

// AboveBaseline returns how far ppm sits above the pre-industrial reference.
func AboveBaseline(ppm float64) float64 {
	return ppm - PreindustrialPPM
}

// BudgetUsed sums the emissions of the series in GtCO2. An empty series uses nothing.
func BudgetUsed(series EmissionsSeries) float64 {
	used := 0.0
	for _, e := range series {
		used += e.GtCO2
	}
	return used
}

// BudgetRemaining returns total minus used. Negative values mean overshoot.
func BudgetRemaining(total, used float64) float64 {
	return total - used
}

// Derive computes the dashboard metrics for one refresh. The year range and
// scenario come from the request that produced the data, not from whatever
// the user has selected since.
func Derive(
	snap ConcentrationSnapshot,
	series EmissionsSeries,
	scenario BudgetScenario,
	startYear, endYear int,
) Metrics {
	total := scenario.Total()
	used := BudgetUsed(series)
	return Metrics{
		LatestPPM:       snap.PPM,
		Date:            snap.Date,
		AtmosphericMass: AtmosphericMass(snap.PPM),
		AboveBaseline:   AboveBaseline(snap.PPM),
		Scenario:        scenario,
		BudgetTotal:     total,
		BudgetUsed:      used,
		BudgetRemaining: BudgetRemaining(total, used),
		StartYear:       startYear,
		EndYear:         endYear,
	}
}

// ClampStartYear bounds a start year to [MinStartYear, currentYear].
func ClampStartYear(year, currentYear int) int {
	if year < MinStartYear {
		return MinStartYear
	}
	if year > currentYear {
		return currentYear
	}
	return year
}
