package memotest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goforj/memo/memocore"
)

// Options configures shared store contract checks.
type Options struct {
	// CaseName is used to namespace keys. Defaults to t.Name().
	CaseName string
	// NullSemantics enables relaxed expectations for the null store.
	NullSemantics bool
	// Writers is how many goroutines race to Add the same key. Defaults to 16.
	Writers int
}

// Store is the minimal contract required by RunStoreContract.
type Store = memocore.Store

// RunStoreContract runs a backend-agnostic store contract suite.
func RunStoreContract(t *testing.T, store Store, opts Options) {
	t.Helper()

	caseName := opts.CaseName
	if caseName == "" {
		caseName = t.Name()
	}
	writers := opts.Writers
	if writers <= 0 {
		writers = 16
	}

	ctx := context.Background()
	key := func(s string) string {
		return sanitize(caseName) + ":" + s
	}
	startLen := store.Len()

	// Miss before any write.
	if _, ok, err := store.Get(ctx, key("missing")); err != nil || ok {
		t.Fatalf("expected miss for unknown key; ok=%v err=%v", ok, err)
	}

	// Add then Get.
	created, err := store.Add(ctx, key("once"), "first")
	if err != nil || !created {
		t.Fatalf("add first failed: created=%v err=%v", created, err)
	}
	value, ok, err := store.Get(ctx, key("once"))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected miss for null semantics, got %v", value)
		}
	} else if !ok || value != "first" {
		t.Fatalf("unexpected get result: ok=%v value=%v", ok, value)
	}

	// Write-once: a second Add never replaces the first value.
	created, err = store.Add(ctx, key("once"), "second")
	if err != nil {
		t.Fatalf("add duplicate failed: %v", err)
	}
	if opts.NullSemantics {
		if !created {
			t.Fatalf("expected null-like add duplicate to report created=true")
		}
	} else {
		if created {
			t.Fatalf("expected duplicate add to return created=false")
		}
		if value, _, _ := store.Get(ctx, key("once")); value != "first" {
			t.Fatalf("expected first value to survive duplicate add, got %v", value)
		}
	}

	// A nil result is a result.
	if _, err := store.Add(ctx, key("nil"), nil); err != nil {
		t.Fatalf("add nil failed: %v", err)
	}
	value, ok, err = store.Get(ctx, key("nil"))
	if err != nil {
		t.Fatalf("get nil failed: %v", err)
	}
	if !opts.NullSemantics && (!ok || value != nil) {
		t.Fatalf("expected stored nil; ok=%v value=%v", ok, value)
	}

	// Racing writers: exactly one wins.
	var wins atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := store.Add(ctx, key("race"), i)
			if err != nil {
				t.Errorf("racing add failed: %v", err)
				return
			}
			if created {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()
	if opts.NullSemantics {
		if wins.Load() != int64(writers) {
			t.Fatalf("expected every null-like add to report created, got %d/%d", wins.Load(), writers)
		}
	} else if wins.Load() != 1 {
		t.Fatalf("expected exactly one racing add to win, got %d", wins.Load())
	}

	// Len only grows, one per distinct key.
	got := store.Len() - startLen
	if opts.NullSemantics {
		if store.Len() != 0 {
			t.Fatalf("expected null-like store to stay empty, got %d", store.Len())
		}
	} else if got != 3 {
		t.Fatalf("expected 3 new entries, got %d", got)
	}
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
