package cache

import "testing"

func TestValidityCache_SetGetInvalidate(t *testing.T) {
	c, err := New[string](Config{MaxEntries: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok := c.Get("K", 0); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("K", true, 100)
	v, ok := c.Get("K", 0)
	if !ok || !v {
		t.Fatalf("got (%v, %v), want (true, true)", v, ok)
	}

	c.Invalidate("K")
	if _, ok := c.Get("K", 0); ok {
		t.Fatal("expected miss after Invalidate")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 2 {
		t.Fatalf("hits=%d misses=%d, want hits=1 misses=2", hits, misses)
	}
}

func TestValidityCache_InvalidateAll(t *testing.T) {
	c, err := New[string](Config{MaxEntries: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Set("A", true, 100)
	c.Set("B", false, 0)
	c.InvalidateAll()

	if _, ok := c.Get("A", 0); ok {
		t.Fatal("expected A to be purged")
	}
	if _, ok := c.Get("B", 0); ok {
		t.Fatal("expected B to be purged")
	}
}

func TestValidityCache_DefaultsMaxEntries(t *testing.T) {
	c, err := New[string](Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c == nil {
		t.Fatal("expected non-nil cache")
	}
}

// TestValidityCache_CachedTrueExpiresWithoutInvalidation mirrors spec.md
// invariant 5 (monotone-false on block number advancing past
// renewed+validity): a cached true must stop being returned once now
// reaches its expiresAt, with no explicit Invalidate call in between.
func TestValidityCache_CachedTrueExpiresWithoutInvalidation(t *testing.T) {
	c, err := New[string](Config{MaxEntries: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Set("K", true, 100)

	if v, ok := c.Get("K", 99); !ok || !v {
		t.Fatalf("got (%v, %v), want (true, true) before expiry", v, ok)
	}
	if _, ok := c.Get("K", 100); ok {
		t.Fatal("expected a cache miss once now reaches expiresAt, not a stale true")
	}
}

// TestValidityCache_CachedFalseNeverAgesBackToTrue documents that a false
// result (owner revoked, not a member, or slot unknown) is not time-bound:
// it only clears via Invalidate/InvalidateAll, since those conditions
// never change on their own as now advances.
func TestValidityCache_CachedFalseNeverAgesBackToTrue(t *testing.T) {
	c, err := New[string](Config{MaxEntries: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Set("K", false, 0)

	if v, ok := c.Get("K", 1_000_000); !ok || v {
		t.Fatalf("got (%v, %v), want (false, true) regardless of now", v, ok)
	}
}
