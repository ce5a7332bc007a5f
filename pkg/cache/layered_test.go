package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// countingStore is an L2 that records how often it is read.
type countingStore struct {
	*MemoryCache
	gets int
}

func (s *countingStore) Get(ctx context.Context, key string, dest interface{}) error {
	s.gets++
	return s.MemoryCache.Get(ctx, key, dest)
}

func newLayered(t *testing.T) (*LayeredCache, *countingStore) {
	t.Helper()
	l2 := &countingStore{MemoryCache: NewMemoryCache(WithMemoryCleanup(time.Hour))}
	lc := NewLayeredCache(l2, 10, time.Minute)
	t.Cleanup(func() { _ = lc.Close() })
	return lc, l2
}

func TestLayeredCacheRoundTrip(t *testing.T) {
	lc, l2 := newLayered(t)
	ctx := context.Background()

	if err := lc.Set(ctx, "session:1", point{"MDB", 401.25}, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := GetJSON[point](ctx, lc, "session:1")
	if err != nil || got.Symbol != "MDB" || got.Close != 401.25 {
		t.Fatalf("get: %+v %v", got, err)
	}
	if l2.gets != 0 {
		t.Fatalf("expected L1 hit, L2 read %d times", l2.gets)
	}

	// L2 holds the write-through copy.
	var raw string
	if err := l2.MemoryCache.Get(ctx, "session:1", &raw); err != nil || raw == "" {
		t.Fatalf("l2 missing value: %q %v", raw, err)
	}
}

func TestLayeredCacheFillsL1FromL2(t *testing.T) {
	lc, l2 := newLayered(t)
	ctx := context.Background()

	_ = l2.Set(ctx, "session:2", point{"AAPL", 10.5}, time.Hour)

	for i := 0; i < 2; i++ {
		got, err := GetJSON[point](ctx, lc, "session:2")
		if err != nil || got.Symbol != "AAPL" {
			t.Fatalf("get %d: %+v %v", i, got, err)
		}
	}
	if l2.gets != 1 {
		t.Fatalf("expected one L2 read, got %d", l2.gets)
	}
}

func TestLayeredCacheDeleteAndMiss(t *testing.T) {
	lc, l2 := newLayered(t)
	ctx := context.Background()

	_ = lc.Set(ctx, "session:3", "x", time.Hour)
	if err := lc.Delete(ctx, "session:3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var s string
	if err := lc.Get(ctx, "session:3", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if ok, _ := l2.Exists(ctx, "session:3"); ok {
		t.Fatalf("delete must reach L2")
	}
}
