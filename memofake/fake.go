// Package memofake records how a Memo touches its result table so tests can
// assert that an operation was computed, stored, or answered from memory.
package memofake

import (
	"context"
	"sync"
	"testing"

	"github.com/goforj/memo"
)

// Op identifies a store operation for assertions.
type Op string

const (
	OpGet Op = "get"
	OpAdd Op = "add"
)

// Fake exposes a counting in-memory store plus assertion helpers for tests.
// It wraps the memory store so no other setup is needed.
type Fake struct {
	store  *countingStore
	counts map[Op]map[string]int
	mu     sync.Mutex
}

// New creates a Fake using an in-memory store.
func New() *Fake {
	f := &Fake{counts: make(map[Op]map[string]int)}
	f.store = &countingStore{
		inner:   memo.NewMemoryStore(context.Background()),
		onCount: f.record,
	}
	return f
}

// Store returns the store to inject into code under test.
func (f *Fake) Store() memo.Store { return f.store }

// Option returns a memo.Option that installs the fake's store.
func (f *Fake) Option() memo.Option { return memo.WithStore(f.store) }

// Reset clears recorded counts. Remembered results are kept.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = make(map[Op]map[string]int)
}

// AssertCalled verifies key was touched by op the expected number of times.
func (f *Fake) AssertCalled(t testing.TB, op Op, key string, times int) {
	t.Helper()
	if got := f.Count(op, key); got != times {
		t.Fatalf("expected %s %q called %d times, got %d", op, key, times, got)
	}
}

// AssertNotCalled ensures key was never touched by op.
func (f *Fake) AssertNotCalled(t testing.TB, op Op, key string) {
	t.Helper()
	if got := f.Count(op, key); got != 0 {
		t.Fatalf("expected %s %q not called, got %d", op, key, got)
	}
}

// AssertTotal ensures the total call count for an op matches times.
func (f *Fake) AssertTotal(t testing.TB, op Op, times int) {
	t.Helper()
	if got := f.Total(op); got != times {
		t.Fatalf("expected %s total=%d, got %d", op, times, got)
	}
}

// Count returns calls for op+key.
func (f *Fake) Count(op Op, key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[op][key]
}

// Total returns total calls for an op across keys.
func (f *Fake) Total(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int
	for _, v := range f.counts[op] {
		sum += v
	}
	return sum
}

func (f *Fake) record(op Op, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[op] == nil {
		f.counts[op] = make(map[string]int)
	}
	f.counts[op][key]++
}

// countingStore wraps a Store to record calls.
type countingStore struct {
	inner   memo.Store
	onCount func(Op, string)
}

func (s *countingStore) Driver() memo.Driver { return s.inner.Driver() }

func (s *countingStore) Get(ctx context.Context, key string) (any, bool, error) {
	s.bump(OpGet, key)
	return s.inner.Get(ctx, key)
}

func (s *countingStore) Add(ctx context.Context, key string, value any) (bool, error) {
	s.bump(OpAdd, key)
	return s.inner.Add(ctx, key, value)
}

func (s *countingStore) Len() int { return s.inner.Len() }

func (s *countingStore) bump(op Op, key string) {
	if s.onCount != nil {
		s.onCount(op, key)
	}
}
