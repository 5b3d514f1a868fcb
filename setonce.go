package dynamix

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/pthm/dynamix/lib/ordmap"
)

// SetOnceMap is a write-once map: the first write to a key binds it
// permanently and later writes to the same key are silent no-ops. Whether a
// key is rebindable depends only on whether it was ever written - a stored
// zero or nil value still counts as written.
//
// Keys iterate in first-write order. SetOnceMap is safe for concurrent use.
type SetOnceMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  ordmap.Map[K, V]
}

// NewSetOnceMap creates an empty write-once map.
func NewSetOnceMap[K comparable, V any]() *SetOnceMap[K, V] {
	return &SetOnceMap[K, V]{}
}

// Set binds v to k if k was never written. A later Set of an already-written
// key does nothing: no error, no panic, no replacement.
func (s *SetOnceMap[K, V]) Set(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, written := s.m.Get(k); written {
		return
	}
	s.m.Set(k, v)
}

// Get returns the value bound to k. Reading a never-written key fails with
// ErrNotFound.
func (s *SetOnceMap[K, V]) Get(k K) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, written := s.m.Get(k)
	if !written {
		var zero V
		return zero, errors.Wrapf(ErrNotFound, "key %v", k)
	}
	return v, nil
}

// GetOr returns the value bound to k, or fallback when k was never written.
func (s *SetOnceMap[K, V]) GetOr(k K, fallback V) V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, written := s.m.Get(k)
	if !written {
		return fallback
	}
	return v
}

// Written checks if k was ever written.
func (s *SetOnceMap[K, V]) Written(k K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, written := s.m.Get(k)
	return written
}

// Len returns the number of written keys.
func (s *SetOnceMap[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.Len()
}

// Keys returns the written keys in first-write order.
func (s *SetOnceMap[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.Keys()
}

// Pairs returns an iterator over (key, value) pairs in first-write order.
// The pairs are snapshotted under the read lock when ranging starts, so the
// consumer's loop body may call back into the map freely.
func (s *SetOnceMap[K, V]) Pairs() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		s.mu.RLock()
		keys := s.m.Keys()
		vals := make([]V, len(keys))
		for i, k := range keys {
			vals[i], _ = s.m.Get(k)
		}
		s.mu.RUnlock()

		for i, k := range keys {
			if !yield(k, vals[i]) {
				return
			}
		}
	}
}

// String renders the map in first-write order, "{k: v, k: v}".
func (s *SetOnceMap[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for k, v := range s.Pairs() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
	}
	b.WriteByte('}')
	return b.String()
}
