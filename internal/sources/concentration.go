package sources

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
)

// Column layout of the NOAA daily file: year, month, day, decimal date, daily mean, ...
const (
	colYear = iota
	colMonth
	colDay
	colDecimalDate
	colDailyMean
	minConcentrationCols
)

const (
	commentMarker = "#"
	maxLineBytes  = 1 << 20
)

// ParseConcentration reads the NOAA daily CSV and returns the record with the
// latest date. Blank lines, comment lines, short rows, rows that fail numeric
// parsing, non-positive means and impossible dates are skipped. On equal dates
// the first row wins.
func ParseConcentration(r io.Reader) (carbon.ConcentrationSnapshot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		latest carbon.ConcentrationSnapshot
		found  bool
	)
	for scanner.Scan() {
		snap, ok := parseConcentrationLine(scanner.Text())
		if !ok {
			continue
		}
		if !found || snap.Date.After(latest.Date) {
			latest = snap
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return carbon.ConcentrationSnapshot{}, parseError(sourceConcentration, fmt.Errorf("scanning lines: %w", err))
	}
	if !found {
		return carbon.ConcentrationSnapshot{}, parseError(sourceConcentration, ErrNoValidRows)
	}
	return latest, nil
}

func parseConcentrationLine(line string) (carbon.ConcentrationSnapshot, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentMarker) {
		return carbon.ConcentrationSnapshot{}, false
	}

	parts := strings.Split(line, ",")
	if len(parts) < minConcentrationCols {
		return carbon.ConcentrationSnapshot{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	year, errY := strconv.Atoi(parts[colYear])
	month, errM := strconv.Atoi(parts[colMonth])
	day, errD := strconv.Atoi(parts[colDay])
	mean, errV := strconv.ParseFloat(parts[colDailyMean], 64)
	if errY != nil || errM != nil || errD != nil || errV != nil {
		return carbon.ConcentrationSnapshot{}, false
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return carbon.ConcentrationSnapshot{}, false
	}

	date, ok := calendarDate(year, month, day)
	if !ok {
		return carbon.ConcentrationSnapshot{}, false
	}
	return carbon.ConcentrationSnapshot{Date: date, PPM: mean}, true
}

// calendarDate builds a UTC date and rejects values time.Date would normalize.
func calendarDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
