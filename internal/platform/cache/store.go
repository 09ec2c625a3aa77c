package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/itbasis/go-clock"

	"github.com/djboulia/fantasygolf/internal/platform/resilience"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store is a TTL cache. Values are deep-copied on the way in and on the way
// out, so a caller mutating a returned value can never corrupt the cached
// copy. Expired entries are treated as misses and overwritten by the next
// Set; Get never evicts.
//
// The backing store for game and roster records allows only a handful of
// queries per second, so Store instances are shared process-wide and created
// once at startup.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	clock   clock.Clock
	flight  resilience.Group[T]
}

// NewStore builds a store whose entries expire ttl after Set. A zero or
// negative ttl disables expiry.
func NewStore[T any](ttl time.Duration, clk clock.Clock) *Store[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		clock:   clk,
	}
}

// Get returns an independent copy of the value for key. It fails closed:
// a missing, expired, or uncopyable entry reports a miss.
func (s *Store[T]) Get(_ context.Context, key string) (T, bool) {
	var zero T
	if key == "" {
		return zero, false
	}

	now := s.clock.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && now.Sub(e.storedAt) > s.ttl {
		return zero, false
	}

	out, err := deepCopy(e.value)
	if err != nil {
		return zero, false
	}
	return out, true
}

// Set stores an independent copy of value under key, replacing any previous
// entry. Values that cannot be copied are not stored.
func (s *Store[T]) Set(_ context.Context, key string, value T) {
	if key == "" {
		return
	}

	copied, err := deepCopy(value)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry[T]{
		value:    copied,
		storedAt: s.clock.Now(),
	}
	s.mu.Unlock()
}

// Delete clears the entry for key, if any.
func (s *Store[T]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader to produce it.
// Concurrent callers that miss on the same key share a single loader
// execution; at most one backing call per key is ever in flight.
func (s *Store[T]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (T, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value, nil
}

func deepCopy[T any](value T) (T, error) {
	var out T
	raw, err := sonic.Marshal(value)
	if err != nil {
		return out, err
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
