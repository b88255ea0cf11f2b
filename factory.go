package memo

import (
	"context"
	"fmt"
)

// NewStore returns a concrete result table for the requested driver.
// Unknown drivers yield a store that reports the problem on every call.
// @group Constructors
//
// Example: select driver explicitly
//
//	ctx := context.Background()
//	store := memo.NewStore(ctx, memo.StoreConfig{
//		Driver: memo.DriverMemory,
//	})
//	fmt.Println(store.Driver()) // memory
func NewStore(_ context.Context, cfg StoreConfig) Store {
	cfg = cfg.withDefaults()
	switch cfg.Driver {
	case DriverMemory:
		return newMemoryStore(cfg.InitialCapacity)
	case DriverNull:
		return newNullStore()
	default:
		return &errorStore{
			driver: cfg.Driver,
			err:    fmt.Errorf("%w: unsupported store driver %q", ErrInvalidArgument, cfg.Driver),
		}
	}
}

// NewStoreWith builds a store using a driver and a set of functional options.
// @group Constructors
//
// Example: memory store (options)
//
//	ctx := context.Background()
//	store := memo.NewStoreWith(ctx, memo.DriverMemory, memo.WithInitialCapacity(64))
//	fmt.Println(store.Driver()) // memory
func NewStoreWith(ctx context.Context, driver Driver, opts ...Option) Store {
	cfg := buildConfig(append([]Option{WithDriver(driver)}, opts...))
	return NewStore(ctx, cfg.StoreConfig)
}

// NewMemoryStore is a convenience for the in-process result table.
// @group Constructors
func NewMemoryStore(ctx context.Context, opts ...Option) Store {
	return NewStoreWith(ctx, DriverMemory, opts...)
}

// NewNullStore is a convenience for a store that never remembers anything.
// @group Constructors
func NewNullStore(ctx context.Context, opts ...Option) Store {
	return NewStoreWith(ctx, DriverNull, opts...)
}
