package memory

import (
	"sort"
	"sync"

	"github.com/yndnr/respkv/pkg/resp"
)

// Pair is one key/value assignment for MSet.
type Pair struct {
	Key   string
	Value resp.Value
}

// Store is a mutex-guarded key to Value map.
type Store struct {
	mu    sync.RWMutex
	items map[string]resp.Value
}

// Option configures the Store.
type Option func(*Store)

// WithCapacity pre-sizes the underlying map.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.items = make(map[string]resp.Value, n)
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		items: make(map[string]resp.Value),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (resp.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set upserts key. The value is deep-copied so the caller may reuse its
// buffers.
func (s *Store) Set(key string, v resp.Value) {
	v = v.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = v
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[key]
	delete(s.items, key)
	return ok
}

// Flush removes every entry in place and returns how many were removed.
func (s *Store) Flush() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	clear(s.items)
	return n
}

// MGet looks up each key in order. Missing keys yield Null.
func (s *Store) MGet(keys []string) []resp.Value {
	out := make([]resp.Value, len(keys))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, k := range keys {
		if v, ok := s.items[k]; ok {
			out[i] = v
		} else {
			out[i] = resp.Null()
		}
	}
	return out
}

// MSet applies all pairs under one lock and returns the number of pairs
// applied. Later pairs win when a key repeats.
func (s *Store) MSet(pairs []Pair) int {
	cloned := make([]Pair, len(pairs))
	for i, p := range pairs {
		cloned[i] = Pair{Key: p.Key, Value: p.Value.Clone()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range cloned {
		s.items[p.Key] = p.Value
	}
	return len(cloned)
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
