// Package progression advances player ratings across seasons and
// finalizes overall, potential, primary position, and skill tags in a
// single development pass.
package progression

import (
	"context"
	"fmt"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/internal/domain/potential"
	"github.com/okian/prospect/internal/domain/skills"
	"github.com/okian/prospect/internal/domain/sport"
)

// DefaultCoachingRank is the league-average staff quality applied when
// a caller does not specify one.
const DefaultCoachingRank = 15.5

// maxWeightDelta bounds the body-weight change applied per season; the
// candidate weight may imply more, the excess is dropped.
const maxWeightDelta = 10

// Engine drives development passes. It mutates players in place and
// holds no per-player state, so concurrent passes on distinct players
// are safe.
type Engine struct {
	strategy  sport.Strategy
	estimator potential.Estimator
	selector  *position.Selector
	tagger    skills.Tagger
	rng       sport.RandomSource
}

// New builds an engine. Strategy, estimator, and tagger are mandatory;
// an incomplete engine is a construction-time error, never a per-call
// nil check.
func New(strategy sport.Strategy, estimator potential.Estimator, tagger skills.Tagger, opts ...Option) (*Engine, error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	if estimator == nil {
		return nil, ErrNilEstimator
	}
	if tagger == nil {
		return nil, ErrNilTagger
	}

	sel, err := position.NewSelector(strategy)
	if err != nil {
		return nil, fmt.Errorf("building position selector: %w", err)
	}

	e := &Engine{
		strategy:  strategy,
		estimator: estimator,
		selector:  sel,
		tagger:    tagger,
		rng:       sport.NewSource(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Develop advances the player's current snapshot by the requested
// number of seasons and then finalizes it: overall rating(s), potential
// projection(s), primary position, skill tags, and the draft-record
// sync for undrafted players. Finalization runs even for zero seasons.
//
// Age bookkeeping: the age is recomputed from the current season at
// entry. It is incremented before each iteration only for new players
// or multi-year passes; a one-season pass on an existing player keeps
// the entry age because the caller already advanced the season counter.
// That asymmetry is a load-bearing contract, not an oversight.
func (e *Engine) Develop(ctx context.Context, p *model.Player, opts ...DevelopOption) error {
	cfg := developConfig{
		years:        1,
		coachingRank: DefaultCoachingRank,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if p == nil {
		return ErrNilPlayer
	}
	cur := p.Current()
	if cur == nil {
		return fmt.Errorf("develop %s: %w", p.ID, ErrNoSnapshot)
	}
	if cur.Attrs == nil {
		cur.Attrs = make(map[string]int)
	}

	age := p.Age(cur.Season)
	bumpAge := cfg.newPlayer || cfg.years > 1

	for i := 0; i < cfg.years; i++ {
		if bumpAge {
			age++
		}
		e.strategy.DevelopSeason(cur, age, cfg.coachingRank, e.rng)
		e.adjustWeight(p, cur)
	}

	if err := e.finalize(ctx, p, cur, age, cfg.skipPotential); err != nil {
		return err
	}

	// Bulk-generated players were rolled forward from a younger self;
	// keep the stored birth year consistent with the snapshot produced.
	if cfg.newPlayer {
		p.Born.Year -= cfg.years
	}

	return nil
}

// adjustWeight applies the strategy's body-mass growth with the
// per-season delta clamp. Strategies without body-mass modeling return
// a non-positive candidate and are skipped.
func (e *Engine) adjustWeight(p *model.Player, snap *model.RatingsSnapshot) {
	candidate := e.strategy.WeightGrowth(p.Height, snap.Attrs[sport.AttrStrength])
	if candidate <= 0 {
		return
	}

	delta := candidate - p.Weight
	if delta > maxWeightDelta {
		delta = maxWeightDelta
	}
	if delta < -maxWeightDelta {
		delta = -maxWeightDelta
	}
	p.Weight += delta
}

func (e *Engine) finalize(ctx context.Context, p *model.Player, cur *model.RatingsSnapshot, age int, skipPotential bool) error {
	if e.strategy.MultiPosition() {
		best, overalls, err := e.selector.Evaluate(cur)
		if err != nil {
			return fmt.Errorf("develop %s: %w", p.ID, err)
		}
		cur.PositionOverall = overalls

		if !skipPotential {
			pots := make(map[model.Position]int, len(overalls))
			for _, pos := range e.strategy.Positions() {
				v, err := e.estimator.Project(ctx, cur, age, pos)
				if err != nil {
					return fmt.Errorf("develop %s: %w", p.ID, err)
				}
				pots[pos] = v
			}
			cur.PositionPotential = pots
		}

		// A manual override is honored when non-empty; anything beyond
		// non-emptiness is the caller's responsibility.
		primary := best
		if p.PosOverride != "" {
			primary = p.PosOverride
		}
		cur.Pos = primary
		cur.Overall = cur.PositionOverall[primary]
		if !skipPotential {
			cur.Potential = cur.PositionPotential[primary]
		}
	} else {
		if p.PosOverride != "" {
			cur.Pos = p.PosOverride
		} else if cur.Pos == "" {
			cur.Pos = e.strategy.PrimaryPosition(cur)
		}
		cur.Overall = e.strategy.Overall(cur, cur.Pos)
		if !skipPotential {
			v, err := e.estimator.Project(ctx, cur, age, cur.Pos)
			if err != nil {
				return fmt.Errorf("develop %s: %w", p.ID, err)
			}
			cur.Potential = v
		}
	}

	cur.Skills = e.tagger.Tags(cur)

	if p.Undrafted() {
		p.Draft.Overall = cur.Overall
		if !skipPotential {
			p.Draft.Potential = cur.Potential
		}
		p.Draft.Skills = append([]string(nil), cur.Skills...)
	}

	return nil
}
