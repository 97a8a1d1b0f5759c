// Package hoops implements the rating strategy for a basketball-style
// sport. Overall is position-independent; a player's position is a fixed
// role derived once from the attribute profile.
package hoops

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
)

// Name is the configuration identifier for this sport.
const Name = "hoops"

// Position codes in canonical order.
const (
	G model.Position = "G"
	F model.Position = "F"
	C model.Position = "C"
)

// Attribute names.
const (
	attrShooting    = "shooting"
	attrFinishing   = "finishing"
	attrPassing     = "passing"
	attrHandling    = "handling"
	attrRebounding  = "rebounding"
	attrDefense     = "defense"
	attrAthleticism = "athleticism"
	attrStamina     = "stamina"
)

const (
	minRating = 0
	maxRating = 100

	leagueMidRank = 15.5
)

var positions = []model.Position{G, F, C}

// overallWeights is the single position-neutral weighting.
var overallWeights = map[string]float64{
	attrShooting:    0.20,
	attrFinishing:   0.15,
	attrPassing:     0.10,
	attrHandling:    0.10,
	attrRebounding:  0.10,
	attrDefense:     0.15,
	attrAthleticism: 0.15,
	attrStamina:     0.05,
}

// Strategy implements sport.Strategy for basketball.
type Strategy struct{}

// New returns the hoops strategy.
func New() *Strategy { return &Strategy{} }

// Name implements sport.Strategy.
func (s *Strategy) Name() string { return Name }

// Positions implements sport.Strategy.
func (s *Strategy) Positions() []model.Position {
	out := make([]model.Position, len(positions))
	copy(out, positions)
	return out
}

// IneligiblePrimary implements sport.Strategy; every role is eligible.
func (s *Strategy) IneligiblePrimary() mapset.Set[model.Position] {
	return mapset.NewSet[model.Position]()
}

// MultiPosition implements sport.Strategy. Overall does not vary by
// position, so the engine skips per-position maps and the selector.
func (s *Strategy) MultiPosition() bool { return false }

// DevelopSeason implements sport.Strategy. Skill attributes grow faster
// than physical ones, which peak early and fall off sooner.
func (s *Strategy) DevelopSeason(snap *model.RatingsSnapshot, age int, coachingRank float64, rng sport.RandomSource) {
	if snap.Attrs == nil {
		snap.Attrs = make(map[string]int)
	}

	coach := 0
	if coachingRank != sport.NoCoaching {
		coach = int(math.Round((leagueMidRank - coachingRank) / 10.0))
	}

	for _, attr := range attributeNames() {
		base := skillGrowthForAge(age)
		if attr == attrAthleticism || attr == attrStamina {
			base = physicalGrowthForAge(age)
		}
		delta := base + rng.UniformInt(-2, 2) + coach
		snap.Attrs[attr] = clampRating(snap.Attrs[attr] + delta)
	}
}

// Overall implements sport.Strategy; pos is ignored.
func (s *Strategy) Overall(snap *model.RatingsSnapshot, _ model.Position) int {
	var sum, total float64
	for attr, w := range overallWeights {
		sum += float64(snap.Attrs[attr]) * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return clampRating(int(math.Round(sum / total)))
}

// PrimaryPosition implements sport.Strategy: a one-time role heuristic
// from the attribute profile.
func (s *Strategy) PrimaryPosition(snap *model.RatingsSnapshot) model.Position {
	inside := snap.Attrs[attrRebounding] + snap.Attrs[attrDefense]
	perimeter := snap.Attrs[attrPassing] + snap.Attrs[attrHandling]

	switch {
	case inside >= perimeter+20:
		return C
	case perimeter >= inside+10:
		return G
	default:
		return F
	}
}

// WeightGrowth implements sport.Strategy. Body mass is not modeled for
// this sport; a non-positive candidate tells the engine to skip the
// adjustment.
func (s *Strategy) WeightGrowth(_, _ int) int { return 0 }

func skillGrowthForAge(age int) int {
	switch {
	case age <= 22:
		return 3
	case age <= 26:
		return 2
	case age <= 28:
		return 1
	default:
		return -1
	}
}

func physicalGrowthForAge(age int) int {
	switch {
	case age <= 21:
		return 2
	case age <= 25:
		return 1
	case age <= 28:
		return 0
	default:
		return -2
	}
}

func clampRating(v int) int {
	if v < minRating {
		return minRating
	}
	if v > maxRating {
		return maxRating
	}
	return v
}

func attributeNames() []string {
	return []string{
		attrShooting, attrFinishing, attrPassing, attrHandling,
		attrRebounding, attrDefense, attrAthleticism, attrStamina,
	}
}

// AttributeNames lists the attributes this sport tracks, in a stable order.
func AttributeNames() []string { return attributeNames() }
