package memo

import (
	"context"
	"strconv"
	"sync"
)

// flight is the in-flight marker for one key. Every caller waiting on the key
// joins the same flight; the shared computation runs on ctx, which is detached
// from the callers and cancelled once the last waiter leaves.
type flight struct {
	id      uint64
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// name scopes the singleflight call to this flight, so a new flight never
// joins a computation that was cancelled after its waiters abandoned it.
func (f *flight) name(key string) string {
	return strconv.FormatUint(f.id, 10) + ":" + key
}

type flightTable struct {
	mu    sync.Mutex
	next  uint64
	byKey map[string]*flight
}

// join registers a waiter for key and reports whether a flight was already
// in progress.
func (t *flightTable) join(ctx context.Context, key string) (*flight, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.byKey == nil {
		t.byKey = make(map[string]*flight)
	}
	if f, ok := t.byKey[key]; ok {
		f.waiters++
		return f, true
	}
	t.next++
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &flight{id: t.next, ctx: fctx, cancel: cancel, waiters: 1}
	t.byKey[key] = f
	return f, false
}

// leave drops a waiter. The last one out retires the flight and cancels its
// context, which stops a computation nobody is waiting for anymore.
func (t *flightTable) leave(key string, f *flight) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	if t.byKey[key] == f {
		delete(t.byKey, key)
	}
	f.cancel()
}

func (t *flightTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byKey)
}
