// Package registry provides a sharded concurrent map used for live session
// and room tracking. It is injected into the components that need it rather
// than accessed as ambient global state, so they stay testable with a fresh
// registry per test.
package registry

import (
	"hash/fnv"
	"sync"
)

const shardCount = 16

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// Registry is a sharded string-keyed concurrent map
type Registry[V any] struct {
	shards [shardCount]*shard[V]
}

// New creates an empty registry
func New[V any]() *Registry[V] {
	r := &Registry[V]{}
	for i := range r.shards {
		r.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return r
}

func (r *Registry[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return r.shards[h.Sum32()%shardCount]
}

// Get returns the value for key
func (r *Registry[V]) Get(key string) (V, bool) {
	s := r.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Put stores the value for key, replacing any existing value
func (r *Registry[V]) Put(key string, value V) {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// PutIfAbsent stores the value only when the key is unused. It reports
// whether the value was stored.
func (r *Registry[V]) PutIfAbsent(key string, value V) bool {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; exists {
		return false
	}
	s.items[key] = value
	return true
}

// Delete removes the key
func (r *Registry[V]) Delete(key string) {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Len returns the total number of entries
func (r *Registry[V]) Len() int {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		total += len(s.items)
		s.mu.RUnlock()
	}
	return total
}

// Range calls fn for every entry until fn returns false
func (r *Registry[V]) Range(fn func(key string, value V) bool) {
	for _, s := range r.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}
