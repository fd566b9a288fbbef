package suggest

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

type countingSource struct {
	hits int
	err  error
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Suggest(ctx context.Context, sentence string) (Result, error) {
	c.hits++
	if c.err != nil {
		return Result{}, c.err
	}
	return Result{Original: sentence, Simplified: "kort.", Score: 45}, nil
}

func TestCachedReusesFreshEntry(t *testing.T) {
	inner := &countingSource{}
	cache, err := NewCached(inner, t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	ctx := context.Background()

	first, err := cache.Suggest(ctx, "Een lange zin.")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := cache.Suggest(ctx, "Een lange zin.")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if inner.hits != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.hits)
	}
	if first.Simplified != second.Simplified || second.Score != 45 {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestCachedRefreshesExpiredEntry(t *testing.T) {
	inner := &countingSource{}
	cache, err := NewCached(inner, t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := cache.Suggest(ctx, "Zin."); err != nil {
		t.Fatalf("first: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := cache.Suggest(ctx, "Zin."); err != nil {
		t.Fatalf("second: %v", err)
	}
	if inner.hits != 2 {
		t.Fatalf("expected refresh after ttl, got %d calls", inner.hits)
	}
}

func TestCachedFallsBackToStaleEntry(t *testing.T) {
	inner := &countingSource{}
	cache, err := NewCached(inner, t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := cache.Suggest(ctx, "Zin."); err != nil {
		t.Fatalf("first: %v", err)
	}
	now = now.Add(time.Hour)
	inner.err = ErrUnavailable
	res, err := cache.Suggest(ctx, "Zin.")
	if err != nil {
		t.Fatalf("expected stale entry, got %v", err)
	}
	if res.Simplified != "kort." {
		t.Fatalf("unexpected stale result %+v", res)
	}

	if _, err := cache.Suggest(ctx, "Andere zin."); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without an entry, got %v", err)
	}
}

func TestCachedUsesEnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(cacheEnvVar, dir)
	cache, err := NewCached(&countingSource{}, "", 0)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	if cache.Dir() != dir || cache.ttl != DefaultCacheTTL {
		t.Fatalf("unexpected cache settings %s %s", cache.Dir(), cache.ttl)
	}
	if _, err := cache.Suggest(context.Background(), "Zin."); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one cache file, got %d (%v)", len(entries), err)
	}
}
