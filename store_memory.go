package memo

import (
	"context"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore keeps results for the life of the process: items never expire
// and no janitor goroutine is started.
type memoryStore struct {
	cache *gocache.Cache
}

func newMemoryStore(capacity int) Store {
	if capacity < 0 {
		capacity = 0
	}
	items := make(map[string]gocache.Item, capacity)
	return &memoryStore{
		cache: gocache.NewFrom(gocache.NoExpiration, 0, items),
	}
}

func (s *memoryStore) Driver() Driver {
	return DriverMemory
}

func (s *memoryStore) Get(_ context.Context, key string) (any, bool, error) {
	value, ok := s.cache.Get(key)
	return value, ok, nil
}

func (s *memoryStore) Add(_ context.Context, key string, value any) (bool, error) {
	if err := s.cache.Add(key, value, gocache.NoExpiration); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *memoryStore) Len() int {
	return s.cache.ItemCount()
}
