// Package position chooses a player's primary position for
// multi-position sports.
package position

import (
	"fmt"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/sport"
)

// Selector rates a snapshot at every valid position and picks the best
// eligible one as primary.
type Selector struct {
	strategy sport.Strategy
}

// NewSelector builds a selector over the given strategy.
func NewSelector(strategy sport.Strategy) (*Selector, error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	return &Selector{strategy: strategy}, nil
}

// Evaluate returns the chosen primary position together with the full
// per-position overall map. Every valid code gets a map entry,
// including codes that lose the comparison and codes ineligible as
// primary. Ties resolve to the earlier position in the strategy's
// canonical order. An empty eligible set is a configuration bug and
// yields ErrNoEligiblePosition.
func (s *Selector) Evaluate(snap *model.RatingsSnapshot) (model.Position, map[model.Position]int, error) {
	valid := s.strategy.Positions()
	banned := s.strategy.IneligiblePrimary()

	overalls := make(map[model.Position]int, len(valid))
	var best model.Position
	bestOverall := -1

	for _, pos := range valid {
		o := s.strategy.Overall(snap, pos)
		overalls[pos] = o

		if banned != nil && banned.Contains(pos) {
			continue
		}
		if o > bestOverall {
			best = pos
			bestOverall = o
		}
	}

	if best == "" {
		return "", overalls, fmt.Errorf("selecting primary among %d positions: %w",
			len(valid), ErrNoEligiblePosition)
	}
	return best, overalls, nil
}
