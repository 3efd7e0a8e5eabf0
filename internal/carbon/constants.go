package carbon

// Conversion constants used by the derivations.
const (
	// PPMToGtCO2 converts an atmospheric CO2 concentration in ppm to the mass of
	// CO2 in the atmosphere in gigatonnes (about 2.13 GtC per ppm times 44/12).
	PPMToGtCO2 = 7.80432

	// PreindustrialPPM is the pre-industrial reference concentration.
	PreindustrialPPM = 280.0

	// MtPerGt converts megatonnes to gigatonnes (divide by this value).
	MtPerGt = 1000.0
)

// Start-year bounds for the budget accumulation window.
const (
	// MinStartYear is the earliest selectable budget start year.
	MinStartYear = 1990

	// DefaultStartYear is used when no start year is configured.
	DefaultStartYear = 2020
)

// WorldEntity is the OWID entity name for global aggregates.
const WorldEntity = "World"
