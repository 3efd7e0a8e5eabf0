// Package carbon holds the CO2 data model and the arithmetic that turns
// fetched concentration and emissions data into dashboard metrics.
//
// Everything here is pure: no I/O, no clocks, no logging. Fetchers in
// internal/sources produce ConcentrationSnapshot and EmissionsSeries values;
// Derive combines them with a BudgetScenario into a Metrics record.
package carbon
