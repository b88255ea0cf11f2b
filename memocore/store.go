package memocore

import "context"

// Store is the shared result table contract.
//
// Entries are write-once: Add never replaces a value already stored under key,
// and stores never evict on their own.
type Store interface {
	Driver() Driver
	Get(ctx context.Context, key string) (any, bool, error)
	Add(ctx context.Context, key string, value any) (bool, error)
	Len() int
}
