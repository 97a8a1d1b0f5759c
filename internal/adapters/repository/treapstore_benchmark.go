package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/okian/prospect/internal/domain/types"
)

// seedBoard fills the store with n players carrying pseudo-random but
// reproducible ratings.
func seedBoard(b *testing.B, store *TreapStore, n int) {
	b.Helper()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		ovr := 40 + rng.Intn(60)
		pot := ovr + rng.Intn(101-ovr)
		e := types.Entry{
			PlayerID:  fmt.Sprintf("player-%07d", i),
			Overall:   ovr,
			Potential: pot,
		}
		if _, err := store.Upsert(ctx, e); err != nil {
			b.Fatalf("seed upsert: %v", err)
		}
	}
}

func BenchmarkTreapStore_Upsert(b *testing.B) {
	for _, size := range []int{1_000, 100_000} {
		b.Run(fmt.Sprintf("board_%d", size), func(b *testing.B) {
			ctx := context.Background()
			store := NewTreapStore(ctx, WithSnapshotInterval(time.Hour))
			defer store.Close()
			seedBoard(b, store, size)

			rng := rand.New(rand.NewSource(2))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				id := fmt.Sprintf("player-%07d", rng.Intn(size))
				ovr := 40 + rng.Intn(60)
				_, err := store.Upsert(ctx, types.Entry{PlayerID: id, Overall: ovr, Potential: min(100, ovr+5)})
				if err != nil {
					b.Fatalf("upsert: %v", err)
				}
			}
		})
	}
}

func BenchmarkTreapStore_TopN(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx, WithSnapshotInterval(time.Hour))
	defer store.Close()
	seedBoard(b, store, 100_000)

	for _, n := range []int{10, 50, 500} {
		b.Run(fmt.Sprintf("top_%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := store.TopN(ctx, n); err != nil {
					b.Fatalf("topn: %v", err)
				}
			}
		})
	}
}

func BenchmarkTreapStore_Rank(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx, WithSnapshotInterval(time.Hour))
	defer store.Close()
	seedBoard(b, store, 10_000)

	rng := rand.New(rand.NewSource(3))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("player-%07d", rng.Intn(10_000))
		if _, err := store.Rank(ctx, id); err != nil {
			b.Fatalf("rank: %v", err)
		}
	}
}

func BenchmarkTreapStore_MixedParallel(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx, WithSnapshotInterval(100*time.Millisecond))
	defer store.Close()
	seedBoard(b, store, 50_000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			switch rng.Intn(10) {
			case 0, 1, 2, 3: // 40% upserts
				id := fmt.Sprintf("player-%07d", rng.Intn(50_000))
				ovr := 40 + rng.Intn(60)
				if _, err := store.Upsert(ctx, types.Entry{PlayerID: id, Overall: ovr, Potential: min(100, ovr+10)}); err != nil {
					b.Errorf("upsert: %v", err)
					return
				}
			case 4, 5, 6: // 30% board views
				if _, err := store.TopN(ctx, 50); err != nil {
					b.Errorf("topn: %v", err)
					return
				}
			case 7, 8: // 20% rank lookups
				id := fmt.Sprintf("player-%07d", rng.Intn(50_000))
				if _, err := store.Rank(ctx, id); err != nil {
					b.Errorf("rank: %v", err)
					return
				}
			default: // 10% counts
				store.Count(ctx)
			}
		}
	})
}
