// Package passguard tracks which player-seasons have already been developed.
package passguard

// Option applies a configuration option to the in-memory guard.
type Option func(*inMemoryGuard)

// WithMaxSize sets the maximum number of keys to keep in memory.
// If maxSize > 0: bounded mode with FIFO eviction.
// If maxSize <= 0: unbounded mode (no eviction, no size limit).
func WithMaxSize(maxSize int) Option {
	return func(g *inMemoryGuard) {
		g.maxSize = maxSize
	}
}
