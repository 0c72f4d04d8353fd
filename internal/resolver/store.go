package resolver

import (
	"maps"
	"sync"
)

// Store is a string-keyed map used for the resolution cache and the
// processed set. The concurrency discipline belongs to the implementation,
// so a host picks MapStore for single-owner use or SyncStore when one
// resolver is shared across goroutines.
type Store[V any] interface {
	Put(key string, v V)
	Get(key string) (V, bool)
	Clear()
	Len() int
	Snapshot() map[string]V
}

// MapStore is an unsynchronized Store. It must not be shared across goroutines.
type MapStore[V any] struct {
	m map[string]V
}

// NewStore creates an empty MapStore.
func NewStore[V any]() *MapStore[V] {
	return &MapStore[V]{m: make(map[string]V)}
}

func (s *MapStore[V]) Put(key string, v V) { s.m[key] = v }

func (s *MapStore[V]) Get(key string) (V, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *MapStore[V]) Clear() { clear(s.m) }

func (s *MapStore[V]) Len() int { return len(s.m) }

// Snapshot returns a copy of the stored entries.
func (s *MapStore[V]) Snapshot() map[string]V { return maps.Clone(s.m) }

// SyncStore is a Store guarded by a read/write mutex.
type SyncStore[V any] struct {
	mu sync.RWMutex
	m  map[string]V
}

// NewSyncStore creates an empty SyncStore.
func NewSyncStore[V any]() *SyncStore[V] {
	return &SyncStore[V]{m: make(map[string]V)}
}

func (s *SyncStore[V]) Put(key string, v V) {
	s.mu.Lock()
	s.m[key] = v
	s.mu.Unlock()
}

func (s *SyncStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	return v, ok
}

func (s *SyncStore[V]) Clear() {
	s.mu.Lock()
	clear(s.m)
	s.mu.Unlock()
}

func (s *SyncStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Snapshot returns a copy of the stored entries.
func (s *SyncStore[V]) Snapshot() map[string]V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.m)
}
