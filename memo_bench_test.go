package memo

import (
	"context"
	"os"
	"strconv"
	"testing"
)

type benchCase struct {
	name string
	opts []Option
}

func benchCases() []benchCase {
	wantedDriver := os.Getenv("BENCH_DRIVER")
	include := func(name string) bool {
		return wantedDriver == "" || wantedDriver == name
	}
	var cases []benchCase
	if include("memory") {
		cases = append(cases, benchCase{name: "memory", opts: []Option{WithDriver(DriverMemory)}})
	}
	if include("null") {
		cases = append(cases, benchCase{name: "null", opts: []Option{WithDriver(DriverNull)}})
	}
	return cases
}

func BenchmarkInvokeHit(b *testing.B) {
	ctx := context.Background()
	for _, tc := range benchCases() {
		b.Run(tc.name, func(b *testing.B) {
			m := Wrap(func(_ context.Context, args ...any) (int, error) {
				return args[0].(int) + 1, nil
			}, tc.opts...)
			_, _ = m.Invoke(ctx, 1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := m.Invoke(ctx, 1); err != nil {
					b.Fatalf("invoke failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkInvokeHitParallel(b *testing.B) {
	ctx := context.Background()
	m := Wrap(func(_ context.Context, args ...any) (int, error) {
		return args[0].(int) + 1, nil
	})
	for i := 0; i < 64; i++ {
		_, _ = m.Invoke(ctx, i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := m.Invoke(ctx, i%64); err != nil {
				b.Errorf("invoke failed: %v", err)
				return
			}
			i++
		}
	})
}

func BenchmarkInvokeMiss(b *testing.B) {
	ctx := context.Background()
	m := Wrap(func(_ context.Context, args ...any) (string, error) {
		return args[0].(string), nil
	})
	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = "k" + strconv.Itoa(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Invoke(ctx, keys[i]); err != nil {
			b.Fatalf("invoke failed: %v", err)
		}
	}
}

func BenchmarkKey(b *testing.B) {
	args := []any{"user", 42, []string{"a", "b"}, map[string]any{"limit": 10, "tags": []any{"x", 1.5}}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Key(args...); err != nil {
			b.Fatalf("key failed: %v", err)
		}
	}
}
