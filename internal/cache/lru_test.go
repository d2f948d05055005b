package cache

import (
	"context"
	"testing"
	"time"

	"budget/internal/core"
	"budget/internal/store"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRU[int](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache returned a value")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after overwrite", c.Len())
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction, want least recently used dropped")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted despite being recently used")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c missing right after insert")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[int](4, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned an expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expired read", c.Len())
	}
}

func TestLRUCleanExpired(t *testing.T) {
	c := NewLRU[int](4, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRUDelete(t *testing.T) {
	c := NewLRU[int](4, time.Minute)

	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a") // deleting a missing key is a no-op

	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned a deleted entry")
	}
}

func TestSummaryCacheInvalidatesOnTransactionChange(t *testing.T) {
	sc := NewSummaryCache(8, time.Minute)
	ctx := context.Background()

	sc.Put("u1", core.Summary{Income: core.Money{Cents: 100}})
	sc.Put("u2", core.Summary{Income: core.Money{Cents: 200}})

	if err := sc.Publish(ctx, store.NewChange(store.CollectionTransactions, store.OpCreate, "u1", "t1")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if _, ok := sc.Get("u1"); ok {
		t.Error("u1 summary survived a transaction change")
	}
	if _, ok := sc.Get("u2"); !ok {
		t.Error("u2 summary invalidated by another user's change")
	}
}

func TestSummaryCacheIgnoresCategoryChanges(t *testing.T) {
	sc := NewSummaryCache(8, time.Minute)

	sc.Put("u1", core.Summary{})
	if err := sc.Publish(context.Background(), store.NewChange(store.CollectionCategories, store.OpCreate, "u1", "c1")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if _, ok := sc.Get("u1"); !ok {
		t.Error("category change invalidated the summary, want it kept")
	}
}
