package sport

import "errors"

// Sentinel kinds for sport configuration errors.
var (
	ErrUnknownSport = errors.New("unknown sport")
)
