package memo

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Func is the shape of an operation a Memo can wrap.
type Func[V any] func(ctx context.Context, args ...any) (V, error)

// Cloner is implemented by result types that must not be shared between
// callers. A Memo hands every caller its own Clone of a remembered value.
type Cloner[V any] interface {
	Clone() V
}

// Stats is a point-in-time snapshot of Memo activity.
type Stats struct {
	// Hits counts calls answered from the result table.
	Hits int64
	// Misses counts calls that had to wait for a computation.
	Misses int64
	// Shared counts misses that joined a computation already in flight.
	Shared int64
	// Computations counts runs of the wrapped operation.
	Computations int64
	// Failures counts runs that returned an error or panicked.
	Failures int64
	// Entries is the number of remembered results.
	Entries int
	// InFlight is the number of keys currently being computed.
	InFlight int
}

// Memo remembers the results of an operation keyed by its call arguments.
//
// Results are written once and kept for the life of the Memo. Concurrent
// callers with the same arguments share a single computation. Failures are
// returned to every caller sharing the computation and are never remembered,
// so the next call runs the operation again.
type Memo[V any] struct {
	fn       Func[V]
	store    Store
	keyFunc  KeyFunc
	observer Observer
	warm     int

	group   singleflight.Group
	flights flightTable

	hits         atomic.Int64
	misses       atomic.Int64
	shared       atomic.Int64
	computations atomic.Int64
	failures     atomic.Int64
}

// Wrap returns a Memo around fn. The Memo owns its result table; nothing is
// shared with other Memos unless WithStore passes the same store to both.
// @group Memo
//
// Example: memoize a slow lookup
//
//	ctx := context.Background()
//	square := memo.Wrap(func(ctx context.Context, args ...any) (int, error) {
//		n := args[0].(int)
//		return n * n, nil
//	})
//	v, err := square.Invoke(ctx, 12)
//	fmt.Println(v, err) // 144 <nil>
func Wrap[V any](fn Func[V], opts ...Option) *Memo[V] {
	cfg := buildConfig(opts)
	store := cfg.Store
	if store == nil {
		store = NewStore(context.Background(), cfg.StoreConfig)
	}
	return &Memo[V]{
		fn:       fn,
		store:    store,
		keyFunc:  cfg.KeyFunc,
		observer: cfg.Observer,
		warm:     cfg.WarmConcurrency,
	}
}

// Wrap1 memoizes a single-argument function and returns a function with the
// same signature.
// @group Memo
func Wrap1[A, V any](fn func(context.Context, A) (V, error), opts ...Option) func(context.Context, A) (V, error) {
	var inner Func[V]
	if fn != nil {
		inner = func(ctx context.Context, args ...any) (V, error) {
			return fn(ctx, argAs[A](args, 0))
		}
	}
	m := Wrap(inner, opts...)
	return func(ctx context.Context, a A) (V, error) {
		return m.Invoke(ctx, a)
	}
}

// Wrap2 memoizes a two-argument function and returns a function with the
// same signature.
// @group Memo
func Wrap2[A, B, V any](fn func(context.Context, A, B) (V, error), opts ...Option) func(context.Context, A, B) (V, error) {
	var inner Func[V]
	if fn != nil {
		inner = func(ctx context.Context, args ...any) (V, error) {
			return fn(ctx, argAs[A](args, 0), argAs[B](args, 1))
		}
	}
	m := Wrap(inner, opts...)
	return func(ctx context.Context, a A, b B) (V, error) {
		return m.Invoke(ctx, a, b)
	}
}

// Invoke returns the remembered result for args, computing it on first use.
//
// Arguments that cannot be encoded as a key fail with ErrInvalidArgument
// before the operation runs. If ctx ends while waiting, Invoke returns
// ctx.Err(); the computation keeps running for the other waiters and is
// cancelled once nobody is waiting.
// @group Memo
func (m *Memo[V]) Invoke(ctx context.Context, args ...any) (V, error) {
	var zero V
	start := time.Now()
	key, err := m.keyFunc(args...)
	if err != nil {
		m.observe(ctx, OpInvoke, "", false, err, start)
		return zero, err
	}
	if m.fn == nil {
		m.observe(ctx, OpInvoke, key, false, ErrNilFunc, start)
		return zero, ErrNilFunc
	}

	value, ok, err := m.lookup(ctx, key)
	if err != nil {
		m.observe(ctx, OpInvoke, key, false, err, start)
		return zero, err
	}
	if ok {
		m.hits.Add(1)
		m.observe(ctx, OpInvoke, key, true, nil, start)
		return value, nil
	}

	m.misses.Add(1)
	value, err = m.wait(ctx, key, args)
	m.observe(ctx, OpInvoke, key, false, err, start)
	return value, err
}

// Func returns a callable view of m with the same signature as the wrapped
// operation.
// @group Memo
func (m *Memo[V]) Func() Func[V] {
	return m.Invoke
}

// Peek returns the remembered result for args without computing it.
// @group Memo
func (m *Memo[V]) Peek(args ...any) (V, bool, error) {
	return m.PeekCtx(context.Background(), args...)
}

// PeekCtx is the context-aware variant of Peek.
// @group Memo
func (m *Memo[V]) PeekCtx(ctx context.Context, args ...any) (V, bool, error) {
	var zero V
	start := time.Now()
	key, err := m.keyFunc(args...)
	if err != nil {
		m.observe(ctx, OpPeek, "", false, err, start)
		return zero, false, err
	}
	value, ok, err := m.lookup(ctx, key)
	m.observe(ctx, OpPeek, key, ok, err, start)
	return value, ok, err
}

// Warm computes the result for every argument set, running at most
// WarmConcurrency computations at once. The first error cancels the remaining
// work and is returned.
// @group Memo
//
// Example: precompute a few counts
//
//	err := m.Warm(ctx, []any{10}, []any{15}, []any{20})
//	fmt.Println(err) // <nil>
func (m *Memo[V]) Warm(ctx context.Context, argSets ...[]any) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.warm)
	for _, args := range argSets {
		g.Go(func() error {
			_, err := m.Invoke(gctx, args...)
			return err
		})
	}
	err := g.Wait()
	m.observe(ctx, OpWarm, "", false, err, start)
	return err
}

// Len reports the number of remembered results.
func (m *Memo[V]) Len() int {
	return m.store.Len()
}

// Stats returns a snapshot of m's counters.
func (m *Memo[V]) Stats() Stats {
	return Stats{
		Hits:         m.hits.Load(),
		Misses:       m.misses.Load(),
		Shared:       m.shared.Load(),
		Computations: m.computations.Load(),
		Failures:     m.failures.Load(),
		Entries:      m.store.Len(),
		InFlight:     m.flights.len(),
	}
}

// Store returns the underlying result table.
func (m *Memo[V]) Store() Store {
	return m.store
}

// Driver reports the underlying store driver.
func (m *Memo[V]) Driver() Driver {
	return m.store.Driver()
}

func (m *Memo[V]) wait(ctx context.Context, key string, args []any) (V, error) {
	var zero V
	f, joined := m.flights.join(ctx, key)
	defer m.flights.leave(key, f)
	if joined {
		m.shared.Add(1)
	}

	ch := m.group.DoChan(f.name(key), func() (any, error) {
		return m.compute(f.ctx, key, args)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return cloneValue(valueAs[V](res.Val)), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (m *Memo[V]) compute(ctx context.Context, key string, args []any) (any, error) {
	// A flight that outlived its first computation re-checks the table first.
	if value, ok, err := m.lookup(ctx, key); err != nil || ok {
		return value, err
	}

	start := time.Now()
	value, err := m.call(ctx, args)
	m.computations.Add(1)
	if err != nil {
		m.failures.Add(1)
		m.observe(ctx, OpCompute, key, false, err, start)
		return nil, err
	}

	created, err := m.store.Add(ctx, key, value)
	if err != nil {
		m.observe(ctx, OpCompute, key, false, err, start)
		return nil, err
	}
	if !created {
		// The first write wins; hand out what the table holds.
		if stored, ok, err := m.lookup(ctx, key); err == nil && ok {
			value = stored
		}
	}
	m.observe(ctx, OpCompute, key, false, nil, start)
	return value, nil
}

type outcome[V any] struct {
	value V
	err   error
}

// call runs fn on its own goroutine so a runtime.Goexit inside it ends only
// that goroutine; the flight still gets a result.
func (m *Memo[V]) call(ctx context.Context, args []any) (V, error) {
	done := make(chan outcome[V], 1)
	go func() {
		var out outcome[V]
		normalReturn := false
		defer func() {
			if r := recover(); r != nil {
				out.err = &PanicError{Value: r, Stack: debug.Stack()}
			} else if !normalReturn {
				out.err = ErrOperationExited
			}
			done <- out
		}()
		out.value, out.err = m.fn(ctx, args...)
		normalReturn = true
	}()
	out := <-done
	return out.value, out.err
}

func (m *Memo[V]) lookup(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := m.store.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	if raw == nil {
		return zero, true, nil
	}
	value, ok := raw.(V)
	if !ok {
		return zero, false, fmt.Errorf("memo: stored value for %q is %T", key, raw)
	}
	return cloneValue(value), true, nil
}

func (m *Memo[V]) observe(ctx context.Context, op, key string, hit bool, err error, start time.Time) {
	if m.observer == nil {
		return
	}
	m.observer.OnMemoOp(ctx, op, key, hit, err, time.Since(start), m.store.Driver())
}

func cloneValue[V any](v V) V {
	if c, ok := any(v).(Cloner[V]); ok {
		return c.Clone()
	}
	return v
}

func valueAs[V any](raw any) V {
	v, _ := raw.(V)
	return v
}

func argAs[T any](args []any, i int) T {
	var zero T
	if i >= len(args) {
		return zero
	}
	v, ok := args[i].(T)
	if !ok {
		return zero
	}
	return v
}
