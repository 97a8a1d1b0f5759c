package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrNotFound  = errors.New("player not found")
	ErrNilPlayer = errors.New("nil player")
	ErrEmptyID   = errors.New("empty player id")
)
