// Package gridiron implements the rating strategy for an American-football
// style sport: thirteen position codes, position-weighted overalls, and an
// age-curve season progression with a coaching bonus.
package gridiron

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
)

// Name is the configuration identifier for this sport.
const Name = "gridiron"

// Position codes in canonical order. KR and PR appear in every rating map
// but are never chosen as a primary position.
const (
	QB model.Position = "QB"
	RB model.Position = "RB"
	WR model.Position = "WR"
	TE model.Position = "TE"
	OL model.Position = "OL"
	DL model.Position = "DL"
	LB model.Position = "LB"
	CB model.Position = "CB"
	S  model.Position = "S"
	K  model.Position = "K"
	P  model.Position = "P"
	KR model.Position = "KR"
	PR model.Position = "PR"
)

// Attribute names. AttrStrength must match sport.AttrStrength so the
// engine's weight adjustment finds it.
const (
	attrStrength  = sport.AttrStrength
	attrSpeed     = "speed"
	attrAgility   = "agility"
	attrAwareness = "awareness"
	attrThrowing  = "throwing"
	attrCatching  = "catching"
	attrCarrying  = "carrying"
	attrTackling  = "tackling"
	attrCoverage  = "coverage"
	attrKicking   = "kicking"
	attrStamina   = "stamina"
)

const (
	minRating = 0
	maxRating = 100

	// leagueMidRank is the neutral coaching rank; better staffs sit below
	// it and add growth, worse staffs subtract.
	leagueMidRank = 15.5

	varianceSpan = 2 // per-attribute growth noise, uniform in [-span, span]
)

var positions = []model.Position{QB, RB, WR, TE, OL, DL, LB, CB, S, K, P, KR, PR}

// positionWeights drive the per-position overall. Attributes absent from
// a row contribute nothing at that position.
var positionWeights = map[model.Position]map[string]float64{
	QB: {attrThrowing: 0.45, attrAwareness: 0.30, attrAgility: 0.10, attrSpeed: 0.05, attrStamina: 0.10},
	RB: {attrCarrying: 0.35, attrSpeed: 0.25, attrAgility: 0.15, attrStrength: 0.15, attrStamina: 0.10},
	WR: {attrCatching: 0.40, attrSpeed: 0.30, attrAgility: 0.15, attrAwareness: 0.10, attrStamina: 0.05},
	TE: {attrCatching: 0.30, attrStrength: 0.25, attrCarrying: 0.15, attrAwareness: 0.15, attrSpeed: 0.15},
	OL: {attrStrength: 0.50, attrAwareness: 0.25, attrAgility: 0.15, attrStamina: 0.10},
	DL: {attrStrength: 0.40, attrTackling: 0.30, attrAgility: 0.15, attrSpeed: 0.15},
	LB: {attrTackling: 0.35, attrAwareness: 0.20, attrStrength: 0.20, attrSpeed: 0.15, attrCoverage: 0.10},
	CB: {attrCoverage: 0.40, attrSpeed: 0.30, attrAgility: 0.20, attrAwareness: 0.10},
	S:  {attrCoverage: 0.30, attrTackling: 0.25, attrSpeed: 0.20, attrAwareness: 0.25},
	K:  {attrKicking: 0.80, attrAwareness: 0.20},
	P:  {attrKicking: 0.75, attrAwareness: 0.25},
	KR: {attrSpeed: 0.45, attrAgility: 0.30, attrCarrying: 0.25},
	PR: {attrSpeed: 0.40, attrAgility: 0.35, attrCatching: 0.25},
}

// Strategy implements sport.Strategy for gridiron football.
type Strategy struct {
	ineligible mapset.Set[model.Position]
}

// New returns the gridiron strategy.
func New() *Strategy {
	return &Strategy{
		ineligible: mapset.NewSet(KR, PR),
	}
}

// Name implements sport.Strategy.
func (s *Strategy) Name() string { return Name }

// Positions implements sport.Strategy.
func (s *Strategy) Positions() []model.Position {
	out := make([]model.Position, len(positions))
	copy(out, positions)
	return out
}

// IneligiblePrimary implements sport.Strategy. Return-duty codes stay in
// the rating maps but cannot be a player's main role.
func (s *Strategy) IneligiblePrimary() mapset.Set[model.Position] {
	return s.ineligible
}

// MultiPosition implements sport.Strategy.
func (s *Strategy) MultiPosition() bool { return true }

// DevelopSeason implements sport.Strategy. Each attribute grows by an
// age-curve base plus uniform noise, plus a coaching adjustment on real
// (non-speculative) progression.
func (s *Strategy) DevelopSeason(snap *model.RatingsSnapshot, age int, coachingRank float64, rng sport.RandomSource) {
	if snap.Attrs == nil {
		snap.Attrs = make(map[string]int)
	}

	base := growthForAge(age)
	coach := 0
	if coachingRank != sport.NoCoaching {
		coach = coachingAdjustment(coachingRank)
	}

	for _, attr := range attributeNames() {
		delta := base + rng.UniformInt(-varianceSpan, varianceSpan) + coach
		snap.Attrs[attr] = clampRating(snap.Attrs[attr] + delta)
	}
}

// Overall implements sport.Strategy.
func (s *Strategy) Overall(snap *model.RatingsSnapshot, pos model.Position) int {
	weights, ok := positionWeights[pos]
	if !ok {
		return 0
	}

	var sum, total float64
	for attr, w := range weights {
		sum += float64(snap.Attrs[attr]) * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return clampRating(int(math.Round(sum / total)))
}

// PrimaryPosition implements sport.Strategy: the eligible position where
// the snapshot rates highest, earlier canonical order breaking ties.
func (s *Strategy) PrimaryPosition(snap *model.RatingsSnapshot) model.Position {
	var best model.Position
	bestOverall := -1
	for _, pos := range positions {
		if s.ineligible.Contains(pos) {
			continue
		}
		if o := s.Overall(snap, pos); o > bestOverall {
			best = pos
			bestOverall = o
		}
	}
	return best
}

// WeightGrowth implements sport.Strategy: the body weight in pounds a
// player's frame and strength imply. The engine clamps the applied change.
func (s *Strategy) WeightGrowth(height, strength int) int {
	if height <= 0 {
		return 0
	}
	return (height-60)*5 + 100 + strength/2
}

// growthForAge is the base per-attribute season growth. Growth tapers
// through the mid twenties and turns negative at the horizon.
func growthForAge(age int) int {
	switch {
	case age <= 21:
		return 3
	case age <= 25:
		return 2
	case age <= 28:
		return 1
	default:
		return -1
	}
}

// coachingAdjustment converts a staff rank (lower is better) into an
// additive growth term.
func coachingAdjustment(rank float64) int {
	return int(math.Round((leagueMidRank - rank) / 10.0))
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
		attrStrength, attrSpeed, attrAgility, attrAwareness, attrThrowing,
		attrCatching, attrCarrying, attrTackling, attrCoverage, attrKicking,
		attrStamina,
	}
}

// AttributeNames lists the attributes this sport tracks, in a stable order.
func AttributeNames() []string { return attributeNames() }
