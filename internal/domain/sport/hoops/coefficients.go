package hoops

import (
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/potential"
)

// Coefficients returns the built-in regression table for hoops. The empty
// position row serves callers projecting before a role is assigned.
func Coefficients() potential.CoefficientTable {
	return potential.CoefficientTable{
		G:                 {Intercept: 29.6, Age: -1.00, Overall: 0.89, Interaction: 0.0050},
		F:                 {Intercept: 28.8, Age: -0.98, Overall: 0.90, Interaction: 0.0048},
		C:                 {Intercept: 27.9, Age: -0.95, Overall: 0.90, Interaction: 0.0046},
		model.Position(""): {Intercept: 28.8, Age: -0.98, Overall: 0.90, Interaction: 0.0048},
	}
}
