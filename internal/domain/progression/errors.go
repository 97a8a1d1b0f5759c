package progression

import "errors"

// Sentinel kinds for development errors.
var (
	ErrNilStrategy  = errors.New("sport strategy is nil")
	ErrNilEstimator = errors.New("potential estimator is nil")
	ErrNilTagger    = errors.New("skill tagger is nil")
	ErrNilPlayer    = errors.New("player is nil")
	ErrNoSnapshot   = errors.New("player has no ratings snapshot")
)
