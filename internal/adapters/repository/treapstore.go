package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/prospect/internal/domain/types"
	"github.com/okian/prospect/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: overall DESC, potential DESC, then player id ASC
// (deterministic). The BST comparator treats "less" as "ranks earlier",
// so an in-order traversal produces the board from best to worst.

// rankKey packs (overall, potential) into one comparable integer.
// Both ratings live in [0, 100], so eight bits each is plenty.
type rankKey int32

func makeKey(overall, potential int) rankKey {
	return rankKey(overall<<8 | potential)
}

// record stores the board row for a player plus its packed sort key.
type record struct {
	key  rankKey
	name string
	pos  string
	ovr  int
	pot  int
}

// Snapshot is an immutable view of the board published on a timer.
// Readers that can tolerate slightly stale data (the dashboard) use it
// instead of taking the store lock.
type Snapshot struct {
	// Rank in O(1) for reads.
	RankByPlayer map[string]int

	// Fast Top-K cache, sorted best to worst (K is much smaller than
	// the full board).
	TopCache []types.Entry
}

// treap node
type node struct {
	id    string
	key   rankKey
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aKey, aID) ranks earlier than (bKey, bID).
func less(aKey rankKey, aID string, bKey rankKey, bID string) bool {
	if aKey != bKey {
		return aKey > bKey // higher ratings rank earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// priority derives a deterministic heap priority from the sort key and
// the player id. Keying on ratings alone would chain equal-rated players
// into long paths; mixing in an id hash keeps the treap balanced while
// runs stay reproducible.
func priority(key rankKey, id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return uint64(key)<<40 | (h.Sum64() & (1<<40 - 1))
}

func insert(n *node, id string, key rankKey) *node {
	if n == nil {
		return &node{id: id, key: key, prio: priority(key, id), size: 1}
	}
	if less(key, id, n.key, n.id) {
		n.left = insert(n.left, id, key)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, key)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, key rankKey) *node {
	if n == nil {
		return nil
	}
	if key == n.key && id == n.id {
		// Merge children by rotating the higher priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, key)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, key)
		}
	} else if less(key, id, n.key, n.id) {
		n.left = deleteNode(n.left, id, key)
	} else {
		n.right = deleteNode(n.right, id, key)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit entries in rank order, best first.
func collectTopN(n *node, limit int, records map[string]record, out *[]types.Entry) {
	if n == nil || len(*out) >= limit {
		return
	}

	collectTopN(n.left, limit, records, out)

	if len(*out) < limit {
		if rec, ok := records[n.id]; ok {
			*out = append(*out, entryOf(n.id, rec))
		}
	}

	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

// collectAll appends every entry in rank order, best first.
func collectAll(n *node, records map[string]record, out *[]types.Entry) {
	if n == nil {
		return
	}
	collectAll(n.left, records, out)
	if rec, ok := records[n.id]; ok {
		*out = append(*out, entryOf(n.id, rec))
	}
	collectAll(n.right, records, out)
}

func entryOf(id string, rec record) types.Entry {
	return types.Entry{
		PlayerID:  id,
		Name:      rec.name,
		Pos:       rec.pos,
		Overall:   rec.ovr,
		Potential: rec.pot,
	}
}

// assignRanks assigns dense ranks to entries already in rank order.
// Players with the same overall and potential share a rank; the next
// distinct pair takes the following rank.
func assignRanks(entries []types.Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Overall != entries[i-1].Overall || entries[i].Potential != entries[i-1].Potential {
			rank++
		}
		entries[i].Rank = rank
	}
}

type TreapStore struct {
	mu               sync.RWMutex
	root             *node
	byID             map[string]record
	snapshotInterval time.Duration
	metricsInterval  time.Duration
	topCacheSize     int

	snapshot atomic.Pointer[Snapshot]

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		snapshotInterval: 1 * time.Second,
		metricsInterval:  5 * time.Second,
		topCacheSize:     500,
		byID:             make(map[string]record),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startPeriodicSnapshots(ctx)
	s.startMetricsUpdater(ctx)

	return s
}

func (s *TreapStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishSnapshot()
			}
		}
	}()
}

func (s *TreapStore) publishSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topCache := make([]types.Entry, 0, s.topCacheSize)
	collectTopN(s.root, s.topCacheSize, s.byID, &topCache)

	all := make([]types.Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &all)
	assignRanks(all)

	rankByPlayer := make(map[string]int, len(all))
	for _, e := range all {
		rankByPlayer[e.PlayerID] = e.Rank
	}

	for i := range topCache {
		topCache[i].Rank = rankByPlayer[topCache[i].PlayerID]
	}

	s.snapshot.Store(&Snapshot{
		RankByPlayer: rankByPlayer,
		TopCache:     topCache,
	})
}

// LoadSnapshot returns the most recently published snapshot, or nil if
// none has been published yet.
func (s *TreapStore) LoadSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// Close gracefully shuts down the background goroutines.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
		// already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Upsert implements Store.Upsert with O(log n) expected time.
func (s *TreapStore) Upsert(ctx context.Context, e types.Entry) (bool, error) {
	key := makeKey(e.Overall, e.Potential)
	rec := record{key: key, name: e.Name, pos: e.Pos, ovr: e.Overall, pot: e.Potential}

	s.mu.Lock()
	if old, ok := s.byID[e.PlayerID]; ok {
		if old == rec {
			s.mu.Unlock()
			return false, nil
		}
		if old.key != key {
			s.root = deleteNode(s.root, e.PlayerID, old.key)
			s.root = insert(s.root, e.PlayerID, key)
		}
	} else {
		s.root = insert(s.root, e.PlayerID, key)
	}
	s.byID[e.PlayerID] = rec
	size := len(s.byID)
	s.mu.Unlock()

	metrics.RecordBoardUpdate()
	metrics.UpdateBoardSize(size)
	return true, nil
}

// Remove implements Store.Remove.
func (s *TreapStore) Remove(ctx context.Context, playerID string) error {
	s.mu.Lock()
	old, ok := s.byID[playerID]
	if ok {
		s.root = deleteNode(s.root, playerID, old.key)
		delete(s.byID, playerID)
	}
	size := len(s.byID)
	s.mu.Unlock()

	if ok {
		metrics.UpdateBoardSize(size)
	}
	return nil
}

// Rank returns the current board row for a player.
func (s *TreapStore) Rank(ctx context.Context, playerID string) (types.Entry, error) {
	defer metrics.RecordBoardRankQuery()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[playerID]; !ok {
		metrics.RecordError("repository", "not_found")
		return types.Entry{}, ErrNotFound
	}

	// In-order traversal yields entries already in rank order.
	all := make([]types.Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &all)
	assignRanks(all)

	for _, e := range all {
		if e.PlayerID == playerID {
			return e, nil
		}
	}
	return types.Entry{}, ErrNotFound
}

// TopN returns the best n rows in board order.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n < 1 {
		metrics.RecordError("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Dense ranks depend only on the rows above, all of which are in
	// the prefix, so ranking the prefix matches the full board.
	out := make([]types.Entry, 0, n)
	collectTopN(s.root, n, s.byID, &out)
	assignRanks(out)
	return out, nil
}

// Count returns the number of players on the board.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateBoardSize(s.Count(ctx))
			}
		}
	}()
}
