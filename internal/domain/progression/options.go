package progression

import "github.com/okian/prospect/internal/domain/sport"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRandomSource sets the source strategies draw from during real
// season progression. Defaults to the crypto-backed source.
func WithRandomSource(rng sport.RandomSource) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// developConfig carries the per-pass parameters of Develop.
type developConfig struct {
	years         int
	newPlayer     bool
	coachingRank  float64
	skipPotential bool
}

// DevelopOption adjusts a single development pass.
type DevelopOption func(*developConfig)

// WithYears sets how many season-progressions to apply before
// finalizing. Zero is valid: finalization still runs.
func WithYears(n int) DevelopOption {
	return func(c *developConfig) {
		if n >= 0 {
			c.years = n
		}
	}
}

// AsNewPlayer marks the pass as bulk generation: the age advances each
// iteration and the birth year is shifted back afterwards.
func AsNewPlayer() DevelopOption {
	return func(c *developConfig) {
		c.newPlayer = true
	}
}

// WithCoachingRank sets the staff quality in [1, teamCount]; lower is
// better.
func WithCoachingRank(rank float64) DevelopOption {
	return func(c *developConfig) {
		if rank > 0 {
			c.coachingRank = rank
		}
	}
}

// SkipPotential leaves the snapshot's potential fields untouched for
// this pass.
func SkipPotential() DevelopOption {
	return func(c *developConfig) {
		c.skipPotential = true
	}
}
