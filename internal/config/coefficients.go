package config

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/potential"
	"gopkg.in/yaml.v3"
)

// LoadCoefficients reads a regression coefficient table from a YAML
// file mapping position codes to coefficient rows:
//
//	QB:
//	  intercept: 26.6
//	  age: -1.05
//	  overall: 0.85
//	  interaction: 0.006
//
// An empty position key serves sports whose overall is not
// position-dependent.
func LoadCoefficients(_ context.Context, path string) (potential.CoefficientTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrLoadConfig, path, err)
	}

	var rows map[string]potential.Coefficients
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrLoadConfig, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s holds no coefficient rows", ErrInvalidConfig, path)
	}

	table := make(potential.CoefficientTable, len(rows))
	for pos, c := range rows {
		table[model.Position(pos)] = c
	}
	return table, nil
}
