package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type point struct {
	Symbol string  `json:"symbol"`
	Close  float64 `json:"close"`
}

func newTestMemory(size int) (*MemoryCache, *time.Time) {
	mc := NewMemoryCache(WithMemoryMaxSize(size), WithMemoryCleanup(time.Hour))
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }
	return mc, &now
}

func TestMemoryCacheStringAndJSON(t *testing.T) {
	mc, _ := newTestMemory(10)
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "s", "plain", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var s string
	if err := mc.Get(ctx, "s", &s); err != nil || s != "plain" {
		t.Fatalf("get string: %q %v", s, err)
	}

	if err := mc.Set(ctx, "p", point{"AAPL", 10.5}, time.Minute); err != nil {
		t.Fatalf("set struct: %v", err)
	}
	got, err := GetJSON[point](ctx, mc, "p")
	if err != nil || got.Symbol != "AAPL" || got.Close != 10.5 {
		t.Fatalf("get json: %+v %v", got, err)
	}

	if err := mc.Get(ctx, "missing", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc, now := newTestMemory(10)
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "k", "v", time.Minute)
	*now = now.Add(2 * time.Minute)

	var s string
	if err := mc.Get(ctx, "k", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired entry to miss, got %v", err)
	}
	if mc.Len() != 0 {
		t.Fatalf("expired entry should be dropped on read")
	}

	_ = mc.Set(ctx, "k", "v", time.Minute)
	if ok, _ := mc.Expire(ctx, "k", time.Hour); !ok {
		t.Fatalf("expire on live key should succeed")
	}
	*now = now.Add(30 * time.Minute)
	if ok, _ := mc.Exists(ctx, "k"); !ok {
		t.Fatalf("extended key should still exist")
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	mc, now := newTestMemory(2)
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", 0)
	*now = now.Add(time.Second)
	_ = mc.Set(ctx, "b", "2", 0)
	*now = now.Add(time.Second)

	var s string
	_ = mc.Get(ctx, "a", &s)
	*now = now.Add(time.Second)
	_ = mc.Set(ctx, "c", "3", 0)

	if ok, _ := mc.Exists(ctx, "b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if ok, _ := mc.Exists(ctx, "a", "c"); !ok {
		t.Fatalf("a and c should remain")
	}

	// Overwriting an existing key never evicts.
	_ = mc.Set(ctx, "a", "1b", 0)
	if mc.Len() != 2 {
		t.Fatalf("unexpected size %d", mc.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	if got := GenerateKey("session", "abc"); got != "session:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
