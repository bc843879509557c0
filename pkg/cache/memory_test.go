package cache

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Symbol string  `json:"symbol"`
		Close  float64 `json:"close"`
	}

	in := payload{Symbol: "005930", Close: 71500}
	if err := mc.Set(ctx, "bars:005930", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	if err := mc.Get(ctx, "bars:005930", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out string
	err := mc.Get(context.Background(), "absent", &out)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out string
	if err := mc.Get(ctx, "k", &out); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", 2, time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "c", 3, time.Minute) // evicts "a", the least recently used

	var out int
	if err := mc.Get(ctx, "a", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected oldest key evicted, got %v", err)
	}
	if err := mc.Get(ctx, "c", &out); err != nil {
		t.Errorf("newest key should survive: %v", err)
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	key := GenerateKeyWithParams("bars", "005930", 15)
	if key != "bars:005930:15" {
		t.Errorf("key = %q, want bars:005930:15", key)
	}
}

func TestMemoryCacheCloseStopsCleanup(t *testing.T) {
	before := runtime.NumGoroutine()

	caches := make([]*MemoryCache, 20)
	for i := range caches {
		caches[i] = NewMemoryCache(WithMemoryCleanup(time.Millisecond))
	}
	for _, mc := range caches {
		if err := mc.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	// The cleanup goroutines exit asynchronously after Close; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("goroutines did not settle after Close: before=%d after=%d", before, runtime.NumGoroutine())
}
