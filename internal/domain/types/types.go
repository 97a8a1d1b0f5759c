// Package types contains common types used across the application
package types

import "github.com/okian/prospect/internal/domain/model"

// Entry represents one row of the ranked prospect board.
type Entry struct {
	Rank      int    `json:"rank"`
	PlayerID  string `json:"player_id"`
	Name      string `json:"name,omitempty"`
	Pos       string `json:"pos,omitempty"`
	Overall   int    `json:"overall"`
	Potential int    `json:"potential"`
}

// DevelopRequest describes one requested development pass.
type DevelopRequest struct {
	Years         int     `json:"years"`
	NewPlayer     bool    `json:"new_player"`
	CoachingRank  float64 `json:"coaching_rank"`
	SkipPotential bool    `json:"skip_potential"`
}

// BootstrapProjection is the result of an on-demand rollout projection.
type BootstrapProjection struct {
	PlayerID  string         `json:"player_id"`
	Pos       model.Position `json:"pos"`
	Age       int            `json:"age"`
	Potential int            `json:"potential"`
	Trials    int            `json:"trials"`
}
