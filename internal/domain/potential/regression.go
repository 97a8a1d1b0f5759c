package potential

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
)

// Jitter bounds for the regression draw, inclusive.
const (
	jitterMin = -2
	jitterMax = 2
)

const maxRating = 100

// RegressionEstimator computes potential from a closed-form fit:
//
//	potential = intercept + age*A + overall*O + age*overall*I + jitter
//
// with jitter uniform in [-2,2]. The reported potential is floored at
// the current overall and clamped to [0,100].
type RegressionEstimator struct {
	table CoefficientTable
	rng   sport.RandomSource
}

// NewRegressionEstimator builds an estimator over the given table. The
// table must be non-empty; it is copied so later caller mutations do
// not leak in.
func NewRegressionEstimator(table CoefficientTable, opts ...RegressionOption) (*RegressionEstimator, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}

	e := &RegressionEstimator{
		table: make(CoefficientTable, len(table)),
		rng:   sport.NewSource(),
	}
	for pos, c := range table {
		e.table[pos] = c
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Project implements Estimator.
func (e *RegressionEstimator) Project(_ context.Context, snap *model.RatingsSnapshot, age int, pos model.Position) (int, error) {
	if snap == nil {
		return 0, ErrNilSnapshot
	}

	ovr := overallAt(snap, pos)
	if age >= GrowthHorizonAge {
		return ovr, nil
	}

	coef, ok := e.table[pos]
	if !ok {
		if pos == "" {
			return 0, fmt.Errorf("regression projection: %w", ErrMissingPosition)
		}
		return 0, fmt.Errorf("regression projection for %q: %w", pos, ErrUnknownPosition)
	}

	raw := coef.Intercept +
		coef.Age*float64(age) +
		coef.Overall*float64(ovr) +
		coef.Interaction*float64(age)*float64(ovr)
	raw += float64(e.rng.UniformInt(jitterMin, jitterMax))

	// Monotonicity floor: the unjittered current overall wins over a
	// lower projection.
	if float64(ovr) > raw {
		return ovr, nil
	}

	p := int(math.Round(raw))
	if p < 0 {
		p = 0
	}
	if p > maxRating {
		p = maxRating
	}
	return p, nil
}
