package lockhash

import "errors"

// Construction-time validation errors. Hot-path operations (Insert,
// Lookup, Remove) never return an error: they report success or
// failure through a bool, exactly as specified.
var (
	// ErrBitsOutOfRange is returned by New when bits is not in [1, 30].
	ErrBitsOutOfRange = errors.New("lockhash: bits must be in [1, 30]")
	// ErrMaxProbesZero is returned by New when MaxProbes is configured to 0.
	ErrMaxProbesZero = errors.New("lockhash: max probes must be greater than zero")
)
