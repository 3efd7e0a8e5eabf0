package carbon

import (
	"fmt"
	"strings"
)

// BudgetScenario selects one of the fixed remaining-carbon-budget scenarios.
type BudgetScenario int

const (
	// Budget50 is the 1.5°C budget with a 50% chance of staying below the threshold.
	Budget50 BudgetScenario = iota
	// Budget66 is the 1.5°C budget with a 66% chance of staying below the threshold.
	Budget66
)

type scenarioEntry struct {
	key   string
	label string
	total float64
}

// scenarioTable is ordered; the first entry is the default.
//
//nolint:gochecknoglobals // Fixed lookup table.
var scenarioTable = [...]scenarioEntry{
	Budget50: {key: "50", label: "1.5°C budget (50% chance) ~580 GtCO₂", total: 580.0},
	Budget66: {key: "66", label: "1.5°C budget (66% chance) ~420 GtCO₂", total: 420.0},
}

// DefaultScenario is the first entry of the scenario table.
const DefaultScenario = Budget50

// Scenarios returns every scenario in table order.
func Scenarios() []BudgetScenario {
	out := make([]BudgetScenario, len(scenarioTable))
	for i := range scenarioTable {
		out[i] = BudgetScenario(i)
	}
	return out
}

// Valid reports whether s names an entry of the scenario table.
func (s BudgetScenario) Valid() bool {
	return s >= 0 && int(s) < len(scenarioTable)
}

func (s BudgetScenario) entry() scenarioEntry {
	if !s.Valid() {
		return scenarioTable[DefaultScenario]
	}
	return scenarioTable[s]
}

// Key returns the short identifier used in config files and flags ("50", "66").
func (s BudgetScenario) Key() string { return s.entry().key }

// Label returns the human-readable scenario description.
func (s BudgetScenario) Label() string { return s.entry().label }

// Total returns the scenario's total budget in GtCO2.
func (s BudgetScenario) Total() float64 { return s.entry().total }

// String implements fmt.Stringer.
func (s BudgetScenario) String() string { return s.Label() }

// Next returns the following scenario, wrapping around to the first.
func (s BudgetScenario) Next() BudgetScenario {
	if !s.Valid() {
		return DefaultScenario
	}
	return BudgetScenario((int(s) + 1) % len(scenarioTable))
}

// MarshalText encodes the scenario as its key.
func (s BudgetScenario) MarshalText() ([]byte, error) {
	return []byte(s.Key()), nil
}

// UnmarshalText decodes a scenario from its key or label.
func (s *BudgetScenario) UnmarshalText(text []byte) error {
	parsed, err := ParseBudgetScenario(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseBudgetScenario resolves a scenario from its key ("50", "66", optionally
// with a trailing "%") or its full label. Anything else is ErrUnknownScenario.
func ParseBudgetScenario(name string) (BudgetScenario, error) {
	trimmed := strings.TrimSpace(name)
	key := strings.TrimSuffix(trimmed, "%")
	for i, e := range scenarioTable {
		if key == e.key || trimmed == e.label {
			return BudgetScenario(i), nil
		}
	}
	return DefaultScenario, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownScenario, name, strings.Join(scenarioKeys(), ", "))
}

func scenarioKeys() []string {
	keys := make([]string, 0, len(scenarioTable))
	for _, e := range scenarioTable {
		keys = append(keys, e.key)
	}
	return keys
}
