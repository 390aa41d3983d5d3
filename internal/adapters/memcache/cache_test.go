package memcache_test

import (
	"context"
	"testing"

	"review_copilot/internal/adapters/memcache"
	"review_copilot/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	c := memcache.New()
	ctx := context.Background()

	rv := domain.Review{ID: "rev001", Text: "great", Topics: []string{"quality"}}
	if err := c.Set(ctx, "reviews:all", []domain.Review{rv}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got []domain.Review
	ok, err := c.Get(ctx, "reviews:all", &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != "rev001" {
		t.Fatalf("unexpected value: %+v", got)
	}

	// stored copy must not alias the caller's value
	got[0].Text = "mutated"
	var again []domain.Review
	if ok, _ := c.Get(ctx, "reviews:all", &again); !ok || again[0].Text != "great" {
		t.Fatalf("cached value was aliased: %+v", again)
	}
}

func TestCache_MissAndDel(t *testing.T) {
	c := memcache.New()
	ctx := context.Background()

	var dst string
	if ok, err := c.Get(ctx, "absent", &dst); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := c.Get(ctx, "k", &dst); ok {
		t.Fatalf("expected miss after Del")
	}
}
