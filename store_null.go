package memo

import "context"

type nullStore struct{}

func newNullStore() Store { return &nullStore{} }

func (s *nullStore) Driver() Driver { return DriverNull }

func (s *nullStore) Get(context.Context, string) (any, bool, error) {
	return nil, false, nil
}

func (s *nullStore) Add(context.Context, string, any) (bool, error) {
	return true, nil
}

func (s *nullStore) Len() int { return 0 }
