// Package ordmap provides a small insertion-ordered map.
//
// Iteration yields entries in the order keys were first inserted. Updating an
// existing key keeps its original position; deleting and re-inserting a key
// moves it to the end. The zero value is ready to use.
package ordmap

import (
	"iter"
	"slices"
)

// Map is an insertion-ordered map from K to V.
//
// Map is not safe for concurrent use; callers that share a Map across
// goroutines must synchronize access themselves.
type Map[K comparable, V any] struct {
	vals map[K]V
	keys []K
}

// New creates an empty Map. Equivalent to declaring a zero Map; provided for
// callers that want a pointer.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// Set stores v under k. A new key is appended to the iteration order; an
// existing key keeps its position. Reports whether k was newly inserted.
func (m *Map[K, V]) Set(k K, v V) bool {
	if m.vals == nil {
		m.vals = make(map[K]V)
	}
	_, exists := m.vals[k]
	m.vals[k] = v
	if !exists {
		m.keys = append(m.keys, k)
	}
	return !exists
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Delete removes k. Reports whether k was present.
func (m *Map[K, V]) Delete(k K) bool {
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.vals)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Values returns the values in insertion order.
func (m *Map[K, V]) Values() []V {
	vals := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		vals = append(vals, m.vals[k])
	}
	return vals
}

// All returns an iterator over entries in insertion order.
//
// The key set is captured when ranging starts, so the sequence is restartable
// and a single pass is unaffected by concurrent inserts. Values are read live;
// keys deleted mid-pass are skipped.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		keys := slices.Clone(m.keys)
		for _, k := range keys {
			v, ok := m.vals[k]
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}
