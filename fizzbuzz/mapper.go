package fizzbuzz

import "fmt"

// Map applies fn to every element of in and returns the results in order.
// A nil mapper fails with ErrInvalidArgument; a nil slice maps to an empty one.
func Map[T, U any](in []T, fn func(T) U) ([]U, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: map requires a mapper function", ErrInvalidArgument)
	}
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out, nil
}
