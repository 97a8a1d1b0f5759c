package potential

import "errors"

// Sentinel kinds for projection errors. All are fatal configuration or
// contract violations; none are retryable.
var (
	ErrUnknownPosition = errors.New("unknown position code")
	ErrMissingPosition = errors.New("position required but not supplied")
	ErrEmptyTable      = errors.New("coefficient table is empty")
	ErrNilStrategy     = errors.New("sport strategy is nil")
	ErrNilSnapshot     = errors.New("ratings snapshot is nil")
)
