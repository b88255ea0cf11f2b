package memo

import (
	"errors"
	"fmt"

	"github.com/goforj/memo/memocore"
)

var (
	// ErrInvalidArgument is returned when arguments cannot be turned into a key.
	ErrInvalidArgument = memocore.ErrInvalidArgument

	ErrNilFunc        = errors.New("memo: wrapped function is nil")
	ErrOperationPanic = errors.New("memo: operation panicked")

	// ErrOperationExited is returned when the operation ended its goroutine
	// (runtime.Goexit) instead of returning.
	ErrOperationExited = errors.New("memo: operation exited without returning")
)

// PanicError carries a panic recovered from a wrapped operation.
// It matches ErrOperationPanic with errors.Is.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("memo: operation panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error { return ErrOperationPanic }
