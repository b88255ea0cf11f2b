package memo

import "context"

// CoreAPI exposes memo metadata.
type CoreAPI interface {
	Driver() Driver
	Store() Store
	Len() int
	Stats() Stats
}

// InvokeAPI exposes the computing entry points.
type InvokeAPI[V any] interface {
	Invoke(ctx context.Context, args ...any) (V, error)
	Func() Func[V]
	Warm(ctx context.Context, argSets ...[]any) error
}

// ReadAPI exposes lookups that never compute.
type ReadAPI[V any] interface {
	Peek(args ...any) (V, bool, error)
	PeekCtx(ctx context.Context, args ...any) (V, bool, error)
}

// API is the composed application-facing interface for Memo.
type API[V any] interface {
	CoreAPI
	InvokeAPI[V]
	ReadAPI[V]
}

var _ API[any] = (*Memo[any])(nil)
