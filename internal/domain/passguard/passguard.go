// Package passguard tracks which player-seasons have already been
// developed so a season's development pass is applied at most once.
package passguard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/prospect/internal/domain/model"
)

// Key builds the guard key for a player's development into a season.
func Key(playerID string, season int) string {
	return fmt.Sprintf("%s:%d", playerID, season)
}

// KeyFor builds the guard key for the season a develop request would
// advance the player into.
func KeyFor(p *model.Player, years int) string {
	season := 0
	if cur := p.Current(); cur != nil {
		season = cur.Season
	}
	return Key(p.ID, season+years)
}

// Guard records seen player-season keys to keep develop passes idempotent.
type Guard interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key from the seen set, allowing a retry. Used when
	// a develop request was recorded but never made it into the pipeline
	// (e.g. queue backpressure).
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryGuard implements Guard with a map plus a FIFO ring of keys.
// For bounded mode (maxSize > 0) the oldest key is evicted when the ring
// is full; maxSize <= 0 disables eviction entirely.
type inMemoryGuard struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string // insertion order, oldest at head
	head    int
	count   int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryGuard creates a new in-memory guard with configuration options.
func NewInMemoryGuard(opts ...Option) Guard {
	g := &inMemoryGuard{
		maxSize: 100_000, // default max size
	}

	for _, opt := range opts {
		opt(g)
	}

	g.seen = make(map[string]struct{})
	if g.maxSize > 0 {
		g.ring = make([]string, g.maxSize)
	}

	return g
}

// SeenAndRecord atomically checks if key was seen and records it if not.
func (g *inMemoryGuard) SeenAndRecord(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.seen[key]; exists {
		return true
	}

	if g.maxSize > 0 {
		if g.count == g.maxSize {
			// Ring is full: drop the oldest key. A cleared slot means the
			// key was already unrecorded, nothing left to delete.
			oldest := g.ring[g.head]
			g.ring[g.head] = ""
			g.head = (g.head + 1) % g.maxSize
			g.count--
			if oldest != "" {
				if _, ok := g.seen[oldest]; ok {
					delete(g.seen, oldest)
					g.size.Add(-1)
				}
			}
		}
		tail := (g.head + g.count) % g.maxSize
		g.ring[tail] = key
		g.count++
	}

	g.seen[key] = struct{}{}
	g.size.Add(1)
	return false
}

// Unrecord removes a key from the seen set, allowing it to be retried.
// The ring slot keeps the key until it rotates out; eviction tolerates
// keys already removed from the map.
func (g *inMemoryGuard) Unrecord(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.seen[key]; !exists {
		return
	}
	delete(g.seen, key)
	g.size.Add(-1)

	if g.maxSize > 0 {
		// Lazily clear the ring slot so eviction skips it.
		for i := 0; i < g.count; i++ {
			idx := (g.head + i) % g.maxSize
			if g.ring[idx] == key {
				g.ring[idx] = ""
				break
			}
		}
	}
}

// Size returns the current number of entries in the guard.
func (g *inMemoryGuard) Size() int64 {
	return g.size.Load()
}
