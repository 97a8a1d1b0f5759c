// Command calibrate refits the per-position regression coefficients
// from bootstrap rollouts and writes them as a YAML table the service
// loads at startup. Run it offline whenever a sport's progression
// model changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/prospect/internal/calibration"
	"github.com/okian/prospect/internal/domain/potential"
	"github.com/okian/prospect/internal/domain/sport/gridiron"
	"github.com/okian/prospect/internal/domain/sport/hoops"
	"github.com/okian/prospect/internal/domain/sport/registry"
	"github.com/okian/prospect/pkg/logger"
)

const (
	defaultTrials      = 200
	defaultAgeMin      = 18
	defaultAgeMax      = potential.GrowthHorizonAge - 1
	defaultOverallMin  = 40
	defaultOverallMax  = 95
	defaultOverallStep = 5
	defaultOutput      = "coefficients.yaml"
	runTimeout         = 30 * time.Minute
)

func main() {
	var (
		sportName   = flag.String("sport", gridiron.Name, "Sport to calibrate")
		trials      = flag.Int("trials", defaultTrials, "Bootstrap trials per grid point")
		seed        = flag.Uint64("seed", 0, "Random seed for reproducible fits (0 picks one at random)")
		ageMin      = flag.Int("age-min", defaultAgeMin, "Youngest sampled age")
		ageMax      = flag.Int("age-max", defaultAgeMax, "Oldest sampled age")
		overallMin  = flag.Int("overall-min", defaultOverallMin, "Lowest sampled overall level")
		overallMax  = flag.Int("overall-max", defaultOverallMax, "Highest sampled overall level")
		overallStep = flag.Int("overall-step", defaultOverallStep, "Stride between sampled overall levels")
		output      = flag.String("output", defaultOutput, "Output file for the coefficient table")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := run(ctx, *sportName, *trials, *seed, *ageMin, *ageMax,
		*overallMin, *overallMax, *overallStep, *output); err != nil {
		logger.Get().Error(ctx, "calibration failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, sportName string, trials int, seed uint64,
	ageMin, ageMax, overallMin, overallMax, overallStep int, output string) error {
	log := logger.Get()

	bundle, err := registry.New(sportName)
	if err != nil {
		return err
	}

	attrs, err := attributeNames(sportName)
	if err != nil {
		return err
	}

	simOpts := []potential.BootstrapOption{potential.WithTrials(trials)}
	if seed != 0 {
		simOpts = append(simOpts, potential.WithSeed(seed))
	}
	sim, err := potential.NewBootstrapSimulator(bundle.Strategy, simOpts...)
	if err != nil {
		return err
	}

	fitter, err := calibration.New(sim, attrs,
		calibration.WithAgeRange(ageMin, ageMax),
		calibration.WithOverallRange(overallMin, overallMax),
		calibration.WithOverallStep(overallStep))
	if err != nil {
		return err
	}

	positions := bundle.Strategy.Positions()
	log.Info(ctx, "starting calibration",
		logger.String("sport", sportName),
		logger.Int("positions", len(positions)),
		logger.Int("trials", sim.Trials()),
		logger.Int("ageMin", ageMin),
		logger.Int("ageMax", ageMax),
		logger.Int("overallMin", overallMin),
		logger.Int("overallMax", overallMax))

	start := time.Now()
	table, reports, err := fitter.Fit(ctx, positions)
	if err != nil {
		return err
	}

	for _, pos := range positions {
		report := reports[pos]
		log.Info(ctx, "fitted position",
			logger.String("pos", string(pos)),
			logger.Int("samples", report.Samples),
			logger.Float64("rmse", report.RMSE),
			logger.Float64("rSquared", report.RSquared))
	}

	if err := calibration.WriteTable(output, table); err != nil {
		return err
	}

	log.Info(ctx, "calibration completed",
		logger.String("output", output),
		logger.String("duration", time.Since(start).String()))
	return nil
}

// attributeNames resolves the sport's rating attribute list. The
// strategy interface deliberately does not expose it; calibration is
// the only consumer that needs to synthesize snapshots from scratch.
func attributeNames(sportName string) ([]string, error) {
	switch sportName {
	case gridiron.Name:
		return gridiron.AttributeNames(), nil
	case hoops.Name:
		return hoops.AttributeNames(), nil
	default:
		return nil, fmt.Errorf("no attribute list for sport %q: %w", sportName, registry.ErrUnknownSport)
	}
}
