package calibration

import "errors"

var (
	// ErrNilEstimator flags construction without a target estimator.
	ErrNilEstimator = errors.New("nil estimator")

	// ErrNoAttributes flags construction without attribute names to
	// build probe snapshots from.
	ErrNoAttributes = errors.New("no attribute names")

	// ErrNoPositions flags a fit request with no positions to fit.
	ErrNoPositions = errors.New("no positions")

	// ErrDegenerateGrid flags a sample grid too small to identify the
	// four coefficients.
	ErrDegenerateGrid = errors.New("degenerate sample grid")

	// ErrSolve flags a least-squares system the solver rejected.
	ErrSolve = errors.New("least squares solve failed")
)
