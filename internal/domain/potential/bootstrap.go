package potential

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"math"
	"sort"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
)

// DefaultTrials balances projection accuracy against rollout cost.
const DefaultTrials = 20

// selectPercentile picks the reported outcome among the sorted trial
// maxima: deliberately optimistic but not the absolute best case.
const selectPercentile = 0.75

// BootstrapSimulator estimates potential by rolling the snapshot
// forward to the growth horizon N times and reporting the 75th
// percentile of the per-trial maximum overalls. Every trial runs on a
// private deep copy with its own seeded random stream, so a fixed seed
// reproduces the projection exactly.
type BootstrapSimulator struct {
	strategy sport.Strategy
	trials   int
	seed     uint64
}

// NewBootstrapSimulator builds a simulator around the given strategy.
// Without WithSeed the seed is drawn once at construction, keeping
// trials independent but projections non-reproducible across runs.
func NewBootstrapSimulator(strategy sport.Strategy, opts ...BootstrapOption) (*BootstrapSimulator, error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}

	b := &BootstrapSimulator{
		strategy: strategy,
		trials:   DefaultTrials,
		seed:     randomSeed(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Project implements Estimator.
func (b *BootstrapSimulator) Project(ctx context.Context, snap *model.RatingsSnapshot, age int, pos model.Position) (int, error) {
	if snap == nil {
		return 0, ErrNilSnapshot
	}

	if age >= GrowthHorizonAge {
		return b.strategy.Overall(snap, pos), nil
	}

	maxima := make([]int, 0, b.trials)
	for t := 0; t < b.trials; t++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		trial := snap.Clone()
		rng := sport.NewSeededSource(b.seed, uint64(t))

		// The trajectory's best starts at the current overall, before
		// any growth is applied.
		best := b.strategy.Overall(trial, pos)
		for a := age + 1; a <= GrowthHorizonAge; a++ {
			b.strategy.DevelopSeason(trial, a, sport.NoCoaching, rng)
			if o := b.strategy.Overall(trial, pos); o > best {
				best = o
			}
		}
		maxima = append(maxima, best)
	}

	sort.Ints(maxima)
	return maxima[percentileIndex(len(maxima))], nil
}

// Trials reports the configured trial count.
func (b *BootstrapSimulator) Trials() int {
	return b.trials
}

func percentileIndex(n int) int {
	return int(math.Floor(selectPercentile * float64(n)))
}

func randomSeed() uint64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 1
	}
	return binary.BigEndian.Uint64(buf[:])
}
