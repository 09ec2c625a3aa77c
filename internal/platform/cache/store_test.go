package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
)

type fixture struct {
	Name  string   `json:"name"`
	Picks []string `json:"picks"`
}

func TestStore_GetIsolatesCallerMutation(t *testing.T) {
	t.Parallel()

	store := NewStore[fixture](time.Minute, clock.New())
	ctx := context.Background()

	store.Set(ctx, "k", fixture{Name: "open", Picks: []string{"p1", "p2"}})

	first, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	first.Name = "mutated"
	first.Picks[0] = "changed"

	second, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if second.Name != "open" || second.Picks[0] != "p1" {
		t.Fatalf("cached value was corrupted by caller mutation: %+v", second)
	}
}

func TestStore_SetIsolatesLaterMutation(t *testing.T) {
	t.Parallel()

	store := NewStore[fixture](time.Minute, clock.New())
	ctx := context.Background()

	original := fixture{Name: "open", Picks: []string{"p1"}}
	store.Set(ctx, "k", original)
	original.Picks[0] = "changed"

	got, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Picks[0] != "p1" {
		t.Fatalf("cached value shares memory with caller: %+v", got)
	}
}

func TestStore_ExpiredEntryIsAMiss(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	store := NewStore[string](5*time.Second, mock)
	ctx := context.Background()

	store.Set(ctx, "game-1", "record")

	mock.Add(5 * time.Second)
	if _, ok := store.Get(ctx, "game-1"); !ok {
		t.Fatal("entry expired before ttl elapsed")
	}

	mock.Add(time.Second)
	if _, ok := store.Get(ctx, "game-1"); ok {
		t.Fatal("expected miss after ttl elapsed")
	}

	// the next Set overwrites the stale entry
	store.Set(ctx, "game-1", "fresh")
	if got, ok := store.Get(ctx, "game-1"); !ok || got != "fresh" {
		t.Fatalf("expected fresh value after overwrite, got %q ok=%t", got, ok)
	}
}

func TestStore_GetOrLoad_DeduplicatesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute, clock.New())
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheFailure(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute, clock.New())
	var calls atomic.Int32
	boom := errors.New("backing store error")

	failing := func(context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	}

	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error on retry, got %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2 (no negative caching)", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
