package fizzbuzz

import (
	"context"
	"fmt"
	"iter"
	"math"
	"reflect"
	"runtime"
	"strconv"
	"time"

	"github.com/goforj/memo"
	"github.com/goforj/memo/memocore"
)

const (
	defaultDelay = 100 * time.Millisecond

	// maxPrealloc caps the up-front Sequence allocation; longer runs grow by
	// append as elements arrive.
	maxPrealloc = 1024
)

// ErrInvalidArgument is returned for counts that are not positive integers.
var ErrInvalidArgument = memocore.ErrInvalidArgument

// Config controls generator pacing.
type Config struct {
	// Delay is the suspension after each element. Zero only yields to the
	// scheduler; negative values are treated as zero.
	Delay time.Duration
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{Delay: defaultDelay}
}

// Option mutates Config when constructing a Generator.
type Option func(Config) Config

// WithDelay overrides the per-element suspension.
func WithDelay(d time.Duration) Option {
	return func(cfg Config) Config {
		cfg.Delay = d
		return cfg
	}
}

// Generator produces paced FizzBuzz sequences. It is safe for concurrent use;
// every call runs its own sequence.
type Generator struct {
	delay time.Duration
}

// New returns a Generator with a 100ms delay unless overridden.
func New(opts ...Option) *Generator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Generator using cfg as given.
func NewWithConfig(cfg Config) *Generator {
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Generator{delay: cfg.Delay}
}

// Delay reports the per-element suspension.
func (g *Generator) Delay() time.Duration {
	return g.delay
}

// Generate classifies 1..n in order, suspending after each element, and
// returns the complete sequence. If ctx ends first, Generate returns ctx.Err()
// and no partial sequence.
func (g *Generator) Generate(ctx context.Context, n int) (Sequence, error) {
	if n < 1 {
		return nil, invalidCount(n)
	}
	out := make(Sequence, 0, min(n, maxPrealloc))
	for r, err := range g.Stream(ctx, n) {
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// GenerateArg is Generate for untyped input. The count must be an integral
// number; see Count.
func (g *Generator) GenerateArg(ctx context.Context, arg any) (Sequence, error) {
	n, err := Count(arg)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, n)
}

// Stream yields the classification of 1..n one element at a time, each after
// its suspension completes. A failure (invalid count or ctx ending) is yielded
// once as the final pair. Breaking out of the loop stops the sequence.
func (g *Generator) Stream(ctx context.Context, n int) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		if n < 1 {
			yield(Result{}, invalidCount(n))
			return
		}
		for i := 1; i <= n; i++ {
			r := Classify(i)
			if err := g.pause(ctx); err != nil {
				yield(Result{}, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Memoize wraps the generator so each count is generated at most once.
// Counts are normalised before keying, so 5 and 5.0 share a result; invalid
// counts fail with ErrInvalidArgument without running the generator.
func (g *Generator) Memoize(opts ...memo.Option) *memo.Memo[Sequence] {
	opts = append([]memo.Option{memo.WithKeyFunc(countKey)}, opts...)
	return memo.Wrap(func(ctx context.Context, args ...any) (Sequence, error) {
		return g.GenerateArg(ctx, args[0])
	}, opts...)
}

func (g *Generator) pause(ctx context.Context) error {
	if g.delay <= 0 {
		runtime.Gosched()
		return ctx.Err()
	}
	t := time.NewTimer(g.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Count validates an untyped count. Any integer kind is accepted, as is a
// finite float with an integral value; the result must be at least 1.
func Count(arg any) (int, error) {
	v := reflect.ValueOf(arg)
	var n int64
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt {
			return 0, fmt.Errorf("%w: count %d overflows int", ErrInvalidArgument, u)
		}
		n = int64(u)
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: count must be an integer, got %v", ErrInvalidArgument, f)
		}
		if f >= math.MaxInt || f < math.MinInt {
			return 0, fmt.Errorf("%w: count %v overflows int", ErrInvalidArgument, f)
		}
		n = int64(f)
	default:
		return 0, fmt.Errorf("%w: count must be a number, got %T", ErrInvalidArgument, arg)
	}
	if n < 1 || n > math.MaxInt {
		return 0, invalidCount(n)
	}
	return int(n), nil
}

func countKey(args ...any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: generate takes exactly one count, got %d arguments", ErrInvalidArgument, len(args))
	}
	n, err := Count(args[0])
	if err != nil {
		return "", err
	}
	return "n=" + strconv.Itoa(n), nil
}

func invalidCount[T int | int64](n T) error {
	return fmt.Errorf("%w: count must be a positive integer, got %d", ErrInvalidArgument, n)
}
