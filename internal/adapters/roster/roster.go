// Package roster provides the in-memory player store. It is the system
// of record for player state; the board only carries derived rankings.
package roster

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/pkg/metrics"
)

// Store holds players keyed by id. Reads and writes exchange deep
// copies, so callers can mutate what they get back without racing the
// store or each other.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*model.Player
}

// New returns an empty roster store.
func New() *Store {
	return &Store{byID: make(map[string]*model.Player)}
}

// Put stores a copy of the player, replacing any previous version.
func (s *Store) Put(ctx context.Context, p *model.Player) error {
	if p == nil {
		return ErrNilPlayer
	}
	if p.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	s.byID[p.ID] = p.Clone()
	size := len(s.byID)
	s.mu.Unlock()

	metrics.UpdatePlayersTotal(size)
	return nil
}

// Get returns a copy of the player, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.Player, error) {
	s.mu.RLock()
	p, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// List returns copies of all players ordered by id.
func (s *Store) List(ctx context.Context) []*model.Player {
	s.mu.RLock()
	out := make([]*model.Player, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Remove deletes a player. Returns ErrNotFound if the id is unknown.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.byID[id]
	if ok {
		delete(s.byID, id)
	}
	size := len(s.byID)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	metrics.UpdatePlayersTotal(size)
	return nil
}

// Len returns the number of players on the roster.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
