// Package repository defines the prospect board store interface and errors.
package repository

import (
	"context"

	"github.com/okian/prospect/internal/domain/types"
)

// Store provides read/write access to the prospect board.
type Store interface {
	// Upsert replaces the board row for a player. Declines are allowed;
	// the board always reflects the latest development pass. Returns true
	// if the stored row changed.
	Upsert(ctx context.Context, e types.Entry) (bool, error)

	// Remove drops a player from the board. Removing an unranked player
	// is a no-op.
	Remove(ctx context.Context, playerID string) error

	// Rank returns the current board row for a player, rank included.
	// Returns ErrNotFound if the player is not on the board.
	Rank(ctx context.Context, playerID string) (types.Entry, error)

	// TopN returns the best n rows ordered by overall desc, potential
	// desc, then player id asc.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Count returns the number of players on the board.
	Count(ctx context.Context) int
}
