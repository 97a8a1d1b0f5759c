package calibration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/prospect/internal/domain/potential"
)

const tableFilePermission = 0600

// EncodeTable renders a coefficient table as YAML, one mapping entry
// per position. The layout matches what the service loads at startup.
func EncodeTable(table potential.CoefficientTable) ([]byte, error) {
	out := make(map[string]potential.Coefficients, len(table))
	for pos, c := range table {
		out[string(pos)] = c
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding coefficient table: %w", err)
	}
	return data, nil
}

// WriteTable writes an encoded coefficient table to path.
func WriteTable(path string, table potential.CoefficientTable) error {
	data, err := EncodeTable(table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, tableFilePermission); err != nil {
		return fmt.Errorf("writing coefficient table: %w", err)
	}
	return nil
}
