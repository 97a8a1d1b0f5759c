// Package sport defines the pluggable per-sport rating strategy consumed
// by the development engine. Implementations live in subpackages; the
// engine never branches on a sport name, it only calls the interface.
package sport

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okian/prospect/internal/domain/model"
)

// NoCoaching disables the coaching bonus during season progression.
// Speculative rollouts use it to model a coaching-neutral baseline.
const NoCoaching float64 = 0

// AttrStrength is the attribute name WeightGrowth consumes. Sports that
// model body mass keep a strength rating under this key.
const AttrStrength = "strength"

// Strategy supplies the sport-specific rating computations. All methods
// are mandatory; single-position sports implement the position-dependent
// ones trivially rather than leaving them unset.
type Strategy interface {
	// Name returns the sport identifier used in configuration.
	Name() string

	// Positions returns the canonical ordered list of valid position
	// codes. The list is unique and non-empty; its order breaks ties
	// when two positions rate equally.
	Positions() []model.Position

	// IneligiblePrimary returns codes that stay present in the
	// per-position rating maps but can never be chosen as a player's
	// primary position. Empty set when every position is eligible.
	IneligiblePrimary() mapset.Set[model.Position]

	// MultiPosition reports whether overall ratings vary by position.
	// When false the engine skips per-position maps and the selector.
	MultiPosition() bool

	// DevelopSeason advances the snapshot's attributes by one season of
	// growth at the given age, mutating snap in place. coachingRank is
	// the staff quality in [1, teamCount] (lower is better) or
	// NoCoaching to apply no bonus. Randomness comes only from rng so
	// callers control reproducibility.
	DevelopSeason(snap *model.RatingsSnapshot, age int, coachingRank float64, rng RandomSource)

	// Overall computes the aggregate rating in [0,100]. For
	// position-dependent sports pos selects the attribute weighting;
	// single-position sports ignore it.
	Overall(snap *model.RatingsSnapshot, pos model.Position) int

	// PrimaryPosition derives a position directly from ratings. Used at
	// player generation and by sports whose overall is not
	// position-dependent.
	PrimaryPosition(snap *model.RatingsSnapshot) model.Position

	// WeightGrowth returns the candidate body weight in pounds implied
	// by frame and strength. The engine clamps the applied change.
	WeightGrowth(height, strength int) int
}
