package position

import "errors"

// Sentinel kinds for selection errors.
var (
	// ErrNoEligiblePosition fires when every valid position is banned
	// from primary selection. Indicates a misconfigured strategy, not a
	// recoverable condition.
	ErrNoEligiblePosition = errors.New("no eligible primary position")
	ErrNilStrategy        = errors.New("sport strategy is nil")
)
