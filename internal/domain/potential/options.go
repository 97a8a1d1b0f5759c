package potential

import "github.com/okian/prospect/internal/domain/sport"

// RegressionOption applies a configuration option to the
// RegressionEstimator.
type RegressionOption func(*RegressionEstimator)

// WithRandomSource sets the source for the jitter draw.
func WithRandomSource(rng sport.RandomSource) RegressionOption {
	return func(e *RegressionEstimator) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// BootstrapOption applies a configuration option to the
// BootstrapSimulator.
type BootstrapOption func(*BootstrapSimulator)

// WithTrials sets the number of rollout trials.
func WithTrials(n int) BootstrapOption {
	return func(b *BootstrapSimulator) {
		if n > 0 {
			b.trials = n
		}
	}
}

// WithSeed fixes the top-level seed, making projections reproducible.
// Trial i draws from stream i under this seed.
func WithSeed(seed uint64) BootstrapOption {
	return func(b *BootstrapSimulator) {
		b.seed = seed
	}
}
