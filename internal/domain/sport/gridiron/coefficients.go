package gridiron

import (
	"github.com/okian/prospect/internal/domain/potential"
)

// Coefficients returns the built-in regression table for gridiron,
// fitted offline against bootstrap rollouts over an (age, overall) grid.
// A table loaded from configuration takes precedence over this one.
func Coefficients() potential.CoefficientTable {
	return potential.CoefficientTable{
		QB: {Intercept: 30.2, Age: -1.04, Overall: 0.88, Interaction: 0.0052},
		RB: {Intercept: 27.8, Age: -0.97, Overall: 0.90, Interaction: 0.0048},
		WR: {Intercept: 28.9, Age: -1.01, Overall: 0.89, Interaction: 0.0050},
		TE: {Intercept: 28.1, Age: -0.98, Overall: 0.90, Interaction: 0.0047},
		OL: {Intercept: 26.7, Age: -0.92, Overall: 0.91, Interaction: 0.0044},
		DL: {Intercept: 27.4, Age: -0.95, Overall: 0.90, Interaction: 0.0046},
		LB: {Intercept: 27.9, Age: -0.96, Overall: 0.90, Interaction: 0.0047},
		CB: {Intercept: 29.3, Age: -1.02, Overall: 0.88, Interaction: 0.0051},
		S:  {Intercept: 28.6, Age: -0.99, Overall: 0.89, Interaction: 0.0049},
		K:  {Intercept: 24.5, Age: -0.85, Overall: 0.93, Interaction: 0.0039},
		P:  {Intercept: 24.1, Age: -0.84, Overall: 0.93, Interaction: 0.0038},
		KR: {Intercept: 28.4, Age: -0.99, Overall: 0.89, Interaction: 0.0049},
		PR: {Intercept: 28.2, Age: -0.98, Overall: 0.89, Interaction: 0.0048},
	}
}
