package carbon

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrUnknownScenario indicates a budget scenario name outside the fixed table.
	ErrUnknownScenario = constError("unknown budget scenario")
)
