package potential_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/potential"
	"github.com/okian/prospect/internal/domain/sport"
	"github.com/smartystreets/goconvey/convey"
)

// fixedSource always returns the same jitter, making regression output
// exact.
type fixedSource struct {
	jitter int
}

func (f fixedSource) UniformInt(_, _ int) int { return f.jitter }
func (f fixedSource) Float64() float64        { return 0 }

// stubStrategy grows a single "ovr" attribute by a bounded random step
// each season. Deterministic given the random source.
type stubStrategy struct {
	maxStep int
}

func (s *stubStrategy) Name() string                { return "stub" }
func (s *stubStrategy) Positions() []model.Position { return []model.Position{"X"} }
func (s *stubStrategy) IneligiblePrimary() mapset.Set[model.Position] {
	return mapset.NewThreadUnsafeSet[model.Position]()
}
func (s *stubStrategy) MultiPosition() bool { return false }

func (s *stubStrategy) DevelopSeason(snap *model.RatingsSnapshot, _ int, _ float64, rng sport.RandomSource) {
	snap.Attrs["ovr"] += rng.UniformInt(0, s.maxStep)
	if snap.Attrs["ovr"] > 100 {
		snap.Attrs["ovr"] = 100
	}
}

func (s *stubStrategy) Overall(snap *model.RatingsSnapshot, _ model.Position) int {
	return snap.Attrs["ovr"]
}

func (s *stubStrategy) PrimaryPosition(_ *model.RatingsSnapshot) model.Position { return "X" }
func (s *stubStrategy) WeightGrowth(_, _ int) int                               { return 0 }

func TestRegressionEstimator(t *testing.T) {
	convey.Convey("Given a regression estimator with known coefficients", t, func() {
		ctx := context.Background()
		table := potential.CoefficientTable{
			"QB": {Intercept: 30, Age: -1.2, Overall: 0.9, Interaction: 0.01},
		}

		convey.Convey("When projecting with zero jitter", func() {
			est, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: 0}))
			convey.So(err, convey.ShouldBeNil)

			snap := &model.RatingsSnapshot{Overall: 60}
			got, err := est.Project(ctx, snap, 22, "QB")

			convey.Convey("Then the closed form evaluates exactly", func() {
				// 30 - 1.2*22 + 0.9*60 + 0.01*22*60 = 70.8 -> 71
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 71)
			})
		})

		convey.Convey("When projecting with jitter at the bounds", func() {
			snap := &model.RatingsSnapshot{Overall: 60}

			plus, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: 2}))
			convey.So(err, convey.ShouldBeNil)
			minus, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: -2}))
			convey.So(err, convey.ShouldBeNil)

			hi, err := plus.Project(ctx, snap, 22, "QB")
			convey.So(err, convey.ShouldBeNil)
			lo, err := minus.Project(ctx, snap, 22, "QB")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the jitter shifts the rounded projection", func() {
				convey.So(hi, convey.ShouldEqual, 73)
				convey.So(lo, convey.ShouldEqual, 69)
			})
		})

		convey.Convey("When the projection falls below the current overall", func() {
			low := potential.CoefficientTable{
				"QB": {Intercept: 0, Age: 0, Overall: 0.5, Interaction: 0},
			}
			est, err := potential.NewRegressionEstimator(low,
				potential.WithRandomSource(fixedSource{jitter: 0}))
			convey.So(err, convey.ShouldBeNil)

			snap := &model.RatingsSnapshot{Overall: 80}
			got, err := est.Project(ctx, snap, 24, "QB")

			convey.Convey("Then the monotonicity floor forces potential to overall", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 80)
			})
		})

		convey.Convey("When the projection exceeds the rating bound", func() {
			high := potential.CoefficientTable{
				"QB": {Intercept: 150, Age: 0, Overall: 0, Interaction: 0},
			}
			est, err := potential.NewRegressionEstimator(high,
				potential.WithRandomSource(fixedSource{jitter: 0}))
			convey.So(err, convey.ShouldBeNil)

			got, err := est.Project(ctx, &model.RatingsSnapshot{Overall: 40}, 20, "QB")

			convey.Convey("Then it clamps to 100", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When the player has reached the growth horizon", func() {
			est, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: 2}))
			convey.So(err, convey.ShouldBeNil)

			snap := &model.RatingsSnapshot{Overall: 77}
			got, err := est.Project(ctx, snap, 29, "QB")

			convey.Convey("Then potential equals overall exactly, bypassing the formula", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 77)
			})

			convey.Convey("And the bypass applies even for unknown positions", func() {
				got, err := est.Project(ctx, snap, 31, "ZZ")
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 77)
			})
		})

		convey.Convey("When the position is unknown below the horizon", func() {
			est, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: 0}))
			convey.So(err, convey.ShouldBeNil)

			_, err = est.Project(ctx, &model.RatingsSnapshot{Overall: 60}, 22, "ZZ")

			convey.Convey("Then it reports a configuration error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, potential.ErrUnknownPosition), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no position is supplied", func() {
			est, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: 0}))
			convey.So(err, convey.ShouldBeNil)

			_, err = est.Project(ctx, &model.RatingsSnapshot{Overall: 60}, 22, "")

			convey.Convey("Then it reports a contract violation", func() {
				convey.So(errors.Is(err, potential.ErrMissingPosition), convey.ShouldBeTrue)
			})

			convey.Convey("Unless the table carries a neutral row", func() {
				neutral := potential.CoefficientTable{
					"": {Intercept: 30, Age: -1.2, Overall: 0.9, Interaction: 0.01},
				}
				est, err := potential.NewRegressionEstimator(neutral,
					potential.WithRandomSource(fixedSource{jitter: 0}))
				convey.So(err, convey.ShouldBeNil)

				got, err := est.Project(ctx, &model.RatingsSnapshot{Overall: 60}, 22, "")
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 71)
			})
		})

		convey.Convey("When a per-position overall is present", func() {
			est, err := potential.NewRegressionEstimator(table,
				potential.WithRandomSource(fixedSource{jitter: 0}))
			convey.So(err, convey.ShouldBeNil)

			snap := &model.RatingsSnapshot{
				Overall:         40,
				PositionOverall: map[model.Position]int{"QB": 60},
			}
			got, err := est.Project(ctx, snap, 22, "QB")

			convey.Convey("Then the projection uses the positional overall", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 71)
			})
		})
	})

	convey.Convey("Given an empty coefficient table", t, func() {
		_, err := potential.NewRegressionEstimator(nil)

		convey.Convey("Then construction fails", func() {
			convey.So(errors.Is(err, potential.ErrEmptyTable), convey.ShouldBeTrue)
		})
	})
}

func TestBootstrapSimulator(t *testing.T) {
	convey.Convey("Given a bootstrap simulator over a stub strategy", t, func() {
		ctx := context.Background()
		strategy := &stubStrategy{maxStep: 6}

		snap := &model.RatingsSnapshot{
			Attrs:   map[string]int{"ovr": 50},
			Overall: 50,
		}

		convey.Convey("When projecting twice with the same seed", func() {
			a, err := potential.NewBootstrapSimulator(strategy, potential.WithSeed(42))
			convey.So(err, convey.ShouldBeNil)
			b, err := potential.NewBootstrapSimulator(strategy, potential.WithSeed(42))
			convey.So(err, convey.ShouldBeNil)

			first, err := a.Project(ctx, snap, 22, "X")
			convey.So(err, convey.ShouldBeNil)
			second, err := b.Project(ctx, snap, 22, "X")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the projections are identical", func() {
				convey.So(first, convey.ShouldEqual, second)
			})
		})

		convey.Convey("When replaying the rollout by hand", func() {
			sim, err := potential.NewBootstrapSimulator(strategy, potential.WithSeed(7))
			convey.So(err, convey.ShouldBeNil)

			maxima := make([]int, 0, potential.DefaultTrials)
			for trial := 0; trial < potential.DefaultTrials; trial++ {
				private := snap.Clone()
				rng := sport.NewSeededSource(7, uint64(trial))
				best := strategy.Overall(private, "X")
				for age := 23; age <= potential.GrowthHorizonAge; age++ {
					strategy.DevelopSeason(private, age, sport.NoCoaching, rng)
					if o := strategy.Overall(private, "X"); o > best {
						best = o
					}
				}
				maxima = append(maxima, best)
			}
			sort.Ints(maxima)

			got, err := sim.Project(ctx, snap, 22, "X")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the simulator reports the value at index 15 of the sorted maxima", func() {
				convey.So(got, convey.ShouldEqual, maxima[15])
			})
		})

		convey.Convey("When projecting at or past the growth horizon", func() {
			sim, err := potential.NewBootstrapSimulator(strategy, potential.WithSeed(42))
			convey.So(err, convey.ShouldBeNil)

			got, err := sim.Project(ctx, snap, potential.GrowthHorizonAge, "X")

			convey.Convey("Then the current overall is returned without simulation", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When projecting, the input snapshot must not be touched", func() {
			sim, err := potential.NewBootstrapSimulator(strategy, potential.WithSeed(42))
			convey.So(err, convey.ShouldBeNil)

			_, err = sim.Project(ctx, snap, 22, "X")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the original attributes are unchanged", func() {
				convey.So(snap.Attrs["ovr"], convey.ShouldEqual, 50)
				convey.So(snap.Overall, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When the trial count is overridden", func() {
			sim, err := potential.NewBootstrapSimulator(strategy,
				potential.WithSeed(42), potential.WithTrials(4))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the override is visible and projection still works", func() {
				convey.So(sim.Trials(), convey.ShouldEqual, 4)

				got, err := sim.Project(ctx, snap, 25, "X")
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldBeGreaterThanOrEqualTo, 50)
				convey.So(got, convey.ShouldBeLessThanOrEqualTo, 100)
			})
		})

		convey.Convey("When projecting a young player", func() {
			sim, err := potential.NewBootstrapSimulator(strategy, potential.WithSeed(42))
			convey.So(err, convey.ShouldBeNil)

			got, err := sim.Project(ctx, snap, 19, "X")

			convey.Convey("Then the result stays within rating bounds and above overall", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldBeGreaterThanOrEqualTo, 50)
				convey.So(got, convey.ShouldBeLessThanOrEqualTo, 100)
			})
		})
	})

	convey.Convey("Given a nil strategy", t, func() {
		_, err := potential.NewBootstrapSimulator(nil)

		convey.Convey("Then construction fails", func() {
			convey.So(errors.Is(err, potential.ErrNilStrategy), convey.ShouldBeTrue)
		})
	})
}
