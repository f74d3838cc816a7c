package model

import "fmt"

// ConfigurationError reports an invalid or out-of-range static parameter.
// Not retryable: the caller must fix the input.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DataError reports a malformed or mismatched-length time series.
type DataError struct {
	Series string
	Reason string
}

func (e *DataError) Error() string {
	if e.Series == "" {
		return e.Reason
	}
	return fmt.Sprintf("series %s: %s", e.Series, e.Reason)
}

// SimulationInvariantError means an internal conservation or bounds check
// failed during the hourly fold. It indicates a defect in the engine, not
// in the inputs, and aborts the run instead of returning partial results.
type SimulationInvariantError struct {
	Hour     int
	Check    string
	Residual float64
}

func (e *SimulationInvariantError) Error() string {
	return fmt.Sprintf("hour %d: %s check failed (residual %.9g)", e.Hour, e.Check, e.Residual)
}

// EconomicError reports a degenerate economic input, e.g. zero energy
// delivered over the whole run.
type EconomicError struct {
	Reason string
}

func (e *EconomicError) Error() string { return e.Reason }
