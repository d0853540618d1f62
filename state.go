package main

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultBaselineCapacity = 1024

var (
	baselines = mustBaselineStore(defaultBaselineCapacity)
)

// BaselineStore holds at most one baseline snapshot per session, in memory only.
// When capacity is reached the least recently used session loses its baseline.
type BaselineStore struct {
	cache *lru.Cache[string, BaselineSnapshot]
}

func newBaselineStore(capacity int) (*BaselineStore, error) {
	if capacity <= 0 {
		capacity = defaultBaselineCapacity
	}

	cache, err := lru.New[string, BaselineSnapshot](capacity)
	if err != nil {
		return nil, fmt.Errorf("error creating baseline store: %w", err)
	}

	return &BaselineStore{cache: cache}, nil
}

func mustBaselineStore(capacity int) *BaselineStore {
	store, err := newBaselineStore(capacity)
	if err != nil {
		panic(err)
	}
	return store
}

// Capture replaces any baseline already held for the session.
func (s *BaselineStore) Capture(session string, snapshot BaselineSnapshot) {
	s.cache.Add(session, snapshot)
}

func (s *BaselineStore) Get(session string) (BaselineSnapshot, bool) {
	return s.cache.Get(session)
}

func (s *BaselineStore) Clear(session string) bool {
	return s.cache.Remove(session)
}

func (s *BaselineStore) Len() int {
	return s.cache.Len()
}
