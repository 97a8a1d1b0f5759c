// Package potential projects the long-run rating ceiling for a player
// snapshot. Two interchangeable estimators exist: a closed-form
// regression over precomputed per-position coefficients, and a
// Monte-Carlo bootstrap rollout used where no coefficient table exists
// (and offline, to calibrate one).
package potential

import (
	"context"

	"github.com/okian/prospect/internal/domain/model"
)

// GrowthHorizonAge is the age at and beyond which the model assumes no
// further growth: potential equals current overall exactly.
const GrowthHorizonAge = 29

// Estimator projects the potential rating in [0,100] for a snapshot at
// the given age. pos selects the position for position-dependent
// sports; sports with a position-neutral overall pass their snapshot's
// fixed position, or the empty position when a neutral coefficient row
// exists.
type Estimator interface {
	Project(ctx context.Context, snap *model.RatingsSnapshot, age int, pos model.Position) (int, error)
}

// Coefficients hold one position's closed-form projection terms,
// precomputed offline by fitting bootstrap outputs.
type Coefficients struct {
	Intercept   float64 `koanf:"intercept" yaml:"intercept"`
	Age         float64 `koanf:"age" yaml:"age"`
	Overall     float64 `koanf:"overall" yaml:"overall"`
	Interaction float64 `koanf:"interaction" yaml:"interaction"`
}

// CoefficientTable maps each valid position code to its coefficients.
// A row keyed by the empty position serves sports whose overall is not
// position-dependent.
type CoefficientTable map[model.Position]Coefficients

// overallAt picks the overall the estimators project from: the
// per-position value when present, the aggregate otherwise.
func overallAt(snap *model.RatingsSnapshot, pos model.Position) int {
	if pos != "" && snap.PositionOverall != nil {
		if v, ok := snap.PositionOverall[pos]; ok {
			return v
		}
	}
	return snap.Overall
}
