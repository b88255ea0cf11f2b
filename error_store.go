package memo

import "context"

// errorStore is returned when a store cannot be built; it preserves the driver
// identity while surfacing the construction error on every call.
type errorStore struct {
	driver Driver
	err    error
}

func (e *errorStore) Driver() Driver                                 { return e.driver }
func (e *errorStore) Get(context.Context, string) (any, bool, error) { return nil, false, e.err }
func (e *errorStore) Add(context.Context, string, any) (bool, error) { return false, e.err }
func (e *errorStore) Len() int                                       { return 0 }
