package memocore

import "errors"

// ErrInvalidArgument reports a violated precondition on caller input: a count
// that is not a positive integer, or arguments that cannot be encoded as a key.
var ErrInvalidArgument = errors.New("memo: invalid argument")
