// Package registry maps configured sport names to their strategy bundle.
// The engine itself never branches on a sport name; resolution happens
// exactly once, when the service is wired.
package registry

import (
	"errors"
	"fmt"

	"github.com/okian/prospect/internal/domain/potential"
	"github.com/okian/prospect/internal/domain/skills"
	"github.com/okian/prospect/internal/domain/sport"
	"github.com/okian/prospect/internal/domain/sport/gridiron"
	"github.com/okian/prospect/internal/domain/sport/hoops"
)

// ErrUnknownSport flags a sport name with no registered strategy.
var ErrUnknownSport = errors.New("unknown sport")

// Bundle carries everything a sport contributes to the service.
type Bundle struct {
	Strategy     sport.Strategy
	Tagger       skills.Tagger
	Coefficients potential.CoefficientTable
}

// New resolves a configured sport name to its bundle.
func New(name string) (Bundle, error) {
	switch name {
	case gridiron.Name:
		return Bundle{
			Strategy:     gridiron.New(),
			Tagger:       gridiron.Tagger(),
			Coefficients: gridiron.Coefficients(),
		}, nil
	case hoops.Name:
		return Bundle{
			Strategy:     hoops.New(),
			Tagger:       hoops.Tagger(),
			Coefficients: hoops.Coefficients(),
		}, nil
	default:
		return Bundle{}, fmt.Errorf("resolving sport %q: %w", name, ErrUnknownSport)
	}
}

// Names lists the registered sport names.
func Names() []string {
	return []string{gridiron.Name, hoops.Name}
}
