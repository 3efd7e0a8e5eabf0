// Package refresh coordinates background refreshes of the CO2 datasets.
//
// A Coordinator serializes refresh attempts with a two-state machine:
//
//	Idle --Start--> InFlight --Poll/Wait drains result--> Idle
//
// Start captures a Request by value and launches one worker goroutine that
// fetches the concentration snapshot and then the emissions series. The
// worker never touches caller state; it sends exactly one Result on a
// buffered channel. The state returns to Idle only when the owning goroutine
// drains that Result, so the consumer always reacts to a cycle before the
// next one may begin. Triggers that arrive while InFlight are ignored.
//
// A Coordinator must be driven from a single goroutine. Loop and the Bubble
// Tea dashboard both follow that rule; Loop.Trigger is the goroutine-safe
// entry point for schedulers.
package refresh
