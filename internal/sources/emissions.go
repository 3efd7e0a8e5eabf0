package sources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
)

// Required OWID header columns.
const (
	headerCountry = "country"
	headerYear    = "year"
	headerCO2     = "co2"
)

type emissionsColumns struct {
	country, year, co2 int
}

func (c emissionsColumns) width() int {
	return max(c.country, c.year, c.co2) + 1
}

// ParseEmissions reads the OWID CSV and returns World emissions in GtCO2 for
// years within [startYear, endYear], sorted ascending by year. Rows with a
// missing or unparseable year or co2 value are skipped.
//
// A body without any usable World row is a parse error. A usable body whose
// World rows all fall outside the range yields an empty series.
func ParseEmissions(r io.Reader, startYear, endYear int) (carbon.EmissionsSeries, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parseError(sourceEmissions, fmt.Errorf("empty body: %w", ErrNoValidRows))
		}
		return nil, parseError(sourceEmissions, fmt.Errorf("reading header: %w", err))
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, parseError(sourceEmissions, err)
	}

	series := carbon.EmissionsSeries{}
	usable := 0
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			var csvErr *csv.ParseError
			if errors.As(readErr, &csvErr) {
				continue
			}
			return nil, parseError(sourceEmissions, readErr)
		}

		row, ok := parseEmissionsRow(record, cols)
		if !ok {
			continue
		}
		usable++
		if row.Year < startYear || row.Year > endYear {
			continue
		}
		series = append(series, row)
	}

	if usable == 0 {
		return nil, parseError(sourceEmissions, fmt.Errorf("%w for %s", ErrNoValidRows, carbon.WorldEntity))
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Year < series[j].Year
	})
	return series, nil
}

func locateColumns(header []string) (emissionsColumns, error) {
	cols := emissionsColumns{country: -1, year: -1, co2: -1}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case headerCountry:
			cols.country = i
		case headerYear:
			cols.year = i
		case headerCO2:
			cols.co2 = i
		}
	}

	var missing []string
	if cols.country < 0 {
		missing = append(missing, headerCountry)
	}
	if cols.year < 0 {
		missing = append(missing, headerYear)
	}
	if cols.co2 < 0 {
		missing = append(missing, headerCO2)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseEmissionsRow(record []string, cols emissionsColumns) (carbon.AnnualEmissions, bool) {
	if len(record) < cols.width() {
		return carbon.AnnualEmissions{}, false
	}
	if record[cols.country] != carbon.WorldEntity {
		return carbon.AnnualEmissions{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(record[cols.year]))
	if err != nil {
		return carbon.AnnualEmissions{}, false
	}

	raw := strings.TrimSpace(record[cols.co2])
	if raw == "" {
		return carbon.AnnualEmissions{}, false
	}
	mt, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(mt) || math.IsInf(mt, 0) {
		return carbon.AnnualEmissions{}, false
	}

	return carbon.AnnualEmissions{Year: year, GtCO2: mt / carbon.MtPerGt}, true
}
