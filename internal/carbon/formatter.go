package carbon

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators stable across environments.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(3283) returns "3,283".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with the given precision and thousand separators.
// Example: FormatFloat(-1234.567, 1) returns "-1,234.6".
func FormatFloat(f float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	if precision <= 0 {
		return sign + FormatNumber(int64(rounded))
	}

	formatted := fmt.Sprintf("%.*f", precision, rounded)
	intPart, fracPart, found := strings.Cut(formatted, ".")
	if !found {
		return sign + formatted
	}

	var whole int64
	if _, err := fmt.Sscan(intPart, &whole); err != nil {
		return sign + formatted
	}
	return sign + FormatNumber(whole) + "." + fracPart
}

// FormatPPM renders a concentration with two decimals, e.g. "420.70 ppm".
func FormatPPM(ppm float64) string {
	return FormatFloat(ppm, 2) + " ppm"
}

// FormatGt renders a mass in gigatonnes of CO2 with the given precision.
func FormatGt(gt float64, precision int) string {
	return FormatFloat(gt, precision) + " GtCO₂"
}
