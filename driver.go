package memo

import "github.com/goforj/memo/memocore"

// Driver identifies the result table backend.
type Driver = memocore.Driver

const (
	DriverNull   = memocore.DriverNull
	DriverMemory = memocore.DriverMemory
)

// Store is the write-once result table a Memo remembers results in.
type Store = memocore.Store
