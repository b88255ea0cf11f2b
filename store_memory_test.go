package memo

import (
	"context"
	"testing"
)

func TestMemoryStoreAddGet(t *testing.T) {
	store := newMemoryStore(8)
	ctx := context.Background()

	if store.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", store.Driver())
	}
	if _, ok, err := store.Get(ctx, "alpha"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	body := []int{1, 2, 3}
	created, err := store.Add(ctx, "alpha", body)
	if err != nil || !created {
		t.Fatalf("add failed: created=%v err=%v", created, err)
	}
	got, ok, err := store.Get(ctx, "alpha")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if vals, _ := got.([]int); len(vals) != 3 || vals[2] != 3 {
		t.Fatalf("unexpected stored value %v", got)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one entry, got %d", store.Len())
	}
}

func TestMemoryStoreAddIsWriteOnce(t *testing.T) {
	store := newMemoryStore(0)
	ctx := context.Background()

	if created, err := store.Add(ctx, "k", "first"); err != nil || !created {
		t.Fatalf("first add failed: created=%v err=%v", created, err)
	}
	created, err := store.Add(ctx, "k", "second")
	if err != nil {
		t.Fatalf("duplicate add returned error: %v", err)
	}
	if created {
		t.Fatalf("expected duplicate add to report created=false")
	}
	if got, _, _ := store.Get(ctx, "k"); got != "first" {
		t.Fatalf("expected first value to survive, got %v", got)
	}
}

func TestMemoryStoreNegativeCapacity(t *testing.T) {
	store := newMemoryStore(-5)
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}
