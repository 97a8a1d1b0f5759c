// Package calibration fits the closed-form regression coefficients the
// service projects potential with. For every position it samples a
// reference estimator, normally the bootstrap simulator, over an
// age/overall grid of probe snapshots and solves
//
//	potential ~ intercept + age*A + overall*O + age*overall*I
//
// by ordinary least squares. The fitted table feeds the regression
// estimator, trading the bootstrap's rollout cost for a single dot
// product per projection.
package calibration

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/potential"
)

// Default sample grid. Ages stop below the growth horizon because the
// engine pins potential to overall from there on and the regression is
// never consulted.
const (
	defaultAgeMin      = 18
	defaultAgeMax      = potential.GrowthHorizonAge - 1
	defaultOverallMin  = 40
	defaultOverallMax  = 95
	defaultOverallStep = 5
)

// coefficientCount is the number of terms in the fitted model.
const coefficientCount = 4

// Report carries per-position fit diagnostics.
type Report struct {
	Samples  int     // grid points sampled
	RMSE     float64 // root mean squared residual, rating points
	RSquared float64 // fraction of target variance explained
}

// Fitter samples a reference estimator and fits one coefficient row
// per position.
type Fitter struct {
	est         potential.Estimator
	attrs       []string
	ageMin      int
	ageMax      int
	overallMin  int
	overallMax  int
	overallStep int
}

// Option applies a configuration option to the Fitter.
type Option func(*Fitter)

// WithAgeRange bounds the sampled ages, inclusive.
func WithAgeRange(min, max int) Option {
	return func(f *Fitter) {
		f.ageMin = min
		f.ageMax = max
	}
}

// WithOverallRange bounds the sampled overall levels, inclusive.
func WithOverallRange(min, max int) Option {
	return func(f *Fitter) {
		f.overallMin = min
		f.overallMax = max
	}
}

// WithOverallStep sets the stride between sampled overall levels.
func WithOverallStep(step int) Option {
	return func(f *Fitter) {
		if step > 0 {
			f.overallStep = step
		}
	}
}

// New builds a Fitter over the given reference estimator. attrs names
// the sport's rating attributes; probe snapshots set every one of them
// to the sampled overall level, which pins the snapshot's overall to
// that level for any weighting that sums to one.
func New(est potential.Estimator, attrs []string, opts ...Option) (*Fitter, error) {
	if est == nil {
		return nil, ErrNilEstimator
	}
	if len(attrs) == 0 {
		return nil, ErrNoAttributes
	}

	f := &Fitter{
		est:         est,
		attrs:       attrs,
		ageMin:      defaultAgeMin,
		ageMax:      defaultAgeMax,
		overallMin:  defaultOverallMin,
		overallMax:  defaultOverallMax,
		overallStep: defaultOverallStep,
	}

	for _, opt := range opts {
		opt(f)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// validate rejects grids that cannot identify all four coefficients:
// the design matrix needs at least two distinct ages and two distinct
// overall levels.
func (f *Fitter) validate() error {
	if f.ageMin >= f.ageMax {
		return fmt.Errorf("age range [%d,%d]: %w", f.ageMin, f.ageMax, ErrDegenerateGrid)
	}
	if f.overallMin+f.overallStep > f.overallMax {
		return fmt.Errorf("overall range [%d,%d] step %d: %w",
			f.overallMin, f.overallMax, f.overallStep, ErrDegenerateGrid)
	}
	return nil
}

// Fit samples the estimator for every position and returns the fitted
// table alongside per-position diagnostics.
func (f *Fitter) Fit(ctx context.Context, positions []model.Position) (potential.CoefficientTable, map[model.Position]Report, error) {
	if len(positions) == 0 {
		return nil, nil, ErrNoPositions
	}

	table := make(potential.CoefficientTable, len(positions))
	reports := make(map[model.Position]Report, len(positions))

	for _, pos := range positions {
		coeffs, report, err := f.fitPosition(ctx, pos)
		if err != nil {
			return nil, nil, fmt.Errorf("fitting %s: %w", pos, err)
		}
		table[pos] = coeffs
		reports[pos] = report
	}

	return table, reports, nil
}

// fitPosition samples the grid for one position and solves the least
// squares system.
func (f *Fitter) fitPosition(ctx context.Context, pos model.Position) (potential.Coefficients, Report, error) {
	rows := f.sampleCount()

	x := mat.NewDense(rows, coefficientCount, nil)
	y := mat.NewDense(rows, 1, nil)

	row := 0
	for age := f.ageMin; age <= f.ageMax; age++ {
		for level := f.overallMin; level <= f.overallMax; level += f.overallStep {
			if err := ctx.Err(); err != nil {
				return potential.Coefficients{}, Report{}, err
			}

			snap := f.probe(level, pos)
			target, err := f.est.Project(ctx, snap, age, pos)
			if err != nil {
				return potential.Coefficients{}, Report{}, err
			}

			a, o := float64(age), float64(level)
			x.SetRow(row, []float64{1, a, o, a * o})
			y.Set(row, 0, float64(target))
			row++
		}
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		return potential.Coefficients{}, Report{}, fmt.Errorf("%w: %v", ErrSolve, err)
	}

	coeffs := potential.Coefficients{
		Intercept:   beta.At(0, 0),
		Age:         beta.At(1, 0),
		Overall:     beta.At(2, 0),
		Interaction: beta.At(3, 0),
	}
	return coeffs, diagnose(x, y, &beta), nil
}

// sampleCount is the number of grid points one position samples.
func (f *Fitter) sampleCount() int {
	ages := f.ageMax - f.ageMin + 1
	overalls := (f.overallMax-f.overallMin)/f.overallStep + 1
	return ages * overalls
}

// probe builds a snapshot whose every attribute sits at level, so the
// strategy's weighted overall lands on level as well.
func (f *Fitter) probe(level int, pos model.Position) *model.RatingsSnapshot {
	attrs := make(map[string]int, len(f.attrs))
	for _, name := range f.attrs {
		attrs[name] = level
	}
	return &model.RatingsSnapshot{
		Attrs:   attrs,
		Overall: level,
		Pos:     pos,
	}
}

// diagnose computes residual statistics for a solved system.
func diagnose(x, y, beta *mat.Dense) Report {
	rows, _ := x.Dims()

	var pred mat.Dense
	pred.Mul(x, beta)

	estimates := make([]float64, rows)
	values := make([]float64, rows)
	sumSq := 0.0
	for i := 0; i < rows; i++ {
		estimates[i] = pred.At(i, 0)
		values[i] = y.At(i, 0)
		r := values[i] - estimates[i]
		sumSq += r * r
	}

	return Report{
		Samples:  rows,
		RMSE:     math.Sqrt(sumSq / float64(rows)),
		RSquared: stat.RSquaredFrom(estimates, values, nil),
	}
}
