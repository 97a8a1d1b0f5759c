package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/okian/prospect/internal/domain/types"
)

func row(id string, ovr, pot int) types.Entry {
	return types.Entry{PlayerID: id, Overall: ovr, Potential: pot}
}

func TestTreapStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	// Empty store
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if _, err := store.Rank(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// First upsert
	changed, err := store.Upsert(ctx, types.Entry{PlayerID: "p1", Name: "Avery Cole", Pos: "QB", Overall: 72, Potential: 88})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected first upsert to report a change")
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	entry, err := store.Rank(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("expected rank 1, got %d", entry.Rank)
	}
	if entry.Overall != 72 || entry.Potential != 88 {
		t.Errorf("expected 72/88, got %d/%d", entry.Overall, entry.Potential)
	}
	if entry.Name != "Avery Cole" || entry.Pos != "QB" {
		t.Errorf("metadata not preserved: %+v", entry)
	}

	entries, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].PlayerID != "p1" {
		t.Errorf("expected p1, got %s", entries[0].PlayerID)
	}
}

func TestTreapStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if _, err := store.Upsert(ctx, row("p1", 70, 85)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A lower rating still replaces the row; boards track the latest
	// pass, not the best ever.
	changed, err := store.Upsert(ctx, row("p1", 65, 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected decline to replace the row")
	}

	entry, err := store.Rank(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Overall != 65 || entry.Potential != 80 {
		t.Errorf("expected 65/80, got %d/%d", entry.Overall, entry.Potential)
	}

	// Identical row reports no change.
	changed, err = store.Upsert(ctx, row("p1", 65, 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected identical upsert to report no change")
	}

	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1 after replacements, got %d", count)
	}
}

func TestTreapStore_Ordering(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	rows := []types.Entry{
		row("p1", 85, 90),
		row("p2", 95, 96),
		row("p3", 75, 99),
		row("p4", 95, 95),
		row("p5", 85, 92),
	}
	for _, r := range rows {
		if _, err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("unexpected error upserting %s: %v", r.PlayerID, err)
		}
	}

	entries, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	// overall desc, then potential desc, then id asc
	wantOrder := []string{"p2", "p4", "p5", "p1", "p3"}
	for i, want := range wantOrder {
		if entries[i].PlayerID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, entries[i].PlayerID)
		}
	}
}

func TestTreapStore_TieBreakByID(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for _, id := range []string{"zeta", "alpha", "mike"} {
		if _, err := store.Upsert(ctx, row(id, 80, 90)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := store.TopN(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []string{"alpha", "mike", "zeta"}
	for i, want := range wantOrder {
		if entries[i].PlayerID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, entries[i].PlayerID)
		}
		if entries[i].Rank != 1 {
			t.Errorf("expected shared rank 1, got %d for %s", entries[i].Rank, entries[i].PlayerID)
		}
	}
}

func TestTreapStore_DenseRanks(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	rows := []types.Entry{
		row("a", 90, 95),
		row("b", 90, 95),
		row("c", 90, 92),
		row("d", 85, 90),
	}
	for _, r := range rows {
		if _, err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRanks := map[string]int{"a": 1, "b": 1, "c": 2, "d": 3}
	for _, e := range entries {
		if e.Rank != wantRanks[e.PlayerID] {
			t.Errorf("%s: expected rank %d, got %d", e.PlayerID, wantRanks[e.PlayerID], e.Rank)
		}
	}

	// Rank queries agree with the board view.
	for id, want := range wantRanks {
		e, err := store.Rank(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Rank != want {
			t.Errorf("Rank(%s): expected %d, got %d", id, want, e.Rank)
		}
	}
}

func TestTreapStore_TopNPrefixRanksMatchFullBoard(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		ovr := 50 + rng.Intn(40)
		_, err := store.Upsert(ctx, row(fmt.Sprintf("player-%03d", i), ovr, ovr+rng.Intn(10)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	full, err := store.TopN(ctx, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prefix, err := store.TopN(ctx, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range prefix {
		if prefix[i] != full[i] {
			t.Errorf("row %d: prefix %+v != full %+v", i, prefix[i], full[i])
		}
	}
}

func TestTreapStore_InvalidLimit(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for _, n := range []int{0, -1, -100} {
		if _, err := store.TopN(ctx, n); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("TopN(%d): expected ErrInvalidLimit, got %v", n, err)
		}
	}
}

func TestTreapStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if _, err := store.Upsert(ctx, row("p1", 80, 90)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Upsert(ctx, row("p2", 70, 85)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Remove(ctx, "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1 after remove, got %d", count)
	}
	if _, err := store.Rank(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing an unranked player is a no-op.
	if err := store.Remove(ctx, "ghost"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := store.Rank(ctx, "p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Rank != 1 {
		t.Errorf("expected p2 promoted to rank 1, got %d", e.Rank)
	}
}

func TestTreapStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx,
		WithSnapshotInterval(10*time.Millisecond),
		WithTopCacheSize(3),
	)
	defer store.Close()

	for i := 0; i < 10; i++ {
		_, err := store.Upsert(ctx, row(fmt.Sprintf("p%02d", i), 60+i, 70+i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	var snap *Snapshot
	for time.Now().Before(deadline) {
		snap = store.LoadSnapshot()
		if snap != nil && len(snap.RankByPlayer) == 10 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if snap == nil || len(snap.RankByPlayer) != 10 {
		t.Fatal("snapshot never published with all players")
	}

	if len(snap.TopCache) != 3 {
		t.Fatalf("expected top cache of 3, got %d", len(snap.TopCache))
	}
	if snap.TopCache[0].PlayerID != "p09" || snap.TopCache[0].Rank != 1 {
		t.Errorf("unexpected cache head: %+v", snap.TopCache[0])
	}
	if snap.RankByPlayer["p00"] != 10 {
		t.Errorf("expected p00 at rank 10, got %d", snap.RankByPlayer["p00"])
	}
}

func TestTreapStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("w%d-p%03d", w, i)
				ovr := 40 + rng.Intn(60)
				if _, err := store.Upsert(ctx, row(id, ovr, min(100, ovr+rng.Intn(15)))); err != nil {
					t.Errorf("upsert %s: %v", id, err)
					return
				}
				if i%10 == 0 {
					if _, err := store.TopN(ctx, 20); err != nil {
						t.Errorf("topn: %v", err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	if count := store.Count(ctx); count != workers*perWorker {
		t.Errorf("expected %d players, got %d", workers*perWorker, count)
	}

	entries, err := store.TopN(ctx, workers*perWorker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Overall > prev.Overall {
			t.Fatalf("ordering violated at %d: %+v before %+v", i, prev, cur)
		}
		if cur.Overall == prev.Overall && cur.Potential > prev.Potential {
			t.Fatalf("potential tie-break violated at %d", i)
		}
	}
}

func TestTreapStore_CloseIsIdempotent(t *testing.T) {
	store := NewTreapStore(context.Background())
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
