package memocore

// Driver identifies the result table backend.
type Driver string

const (
	DriverNull   Driver = "null"
	DriverMemory Driver = "memory"
)
