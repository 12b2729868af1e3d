// Package session holds process-local, ephemeral state keyed by an id:
// outstanding quiz instances and in-flight chat dialogues.
//
// A Registry only exposes insert, read, consume, conditional update and
// predicate sweeps. Callers never get at the underlying map. Callbacks passed
// to Update, DeleteIf and Sweep run while the lock is held and must not block.
package session

import "sync"

type Registry[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{entries: make(map[K]V)}
}

// Put inserts or replaces the value stored under key.
func (r *Registry[K, V]) Put(key K, v V) {
	r.mu.Lock()
	r.entries[key] = v
	r.mu.Unlock()
}

// Get returns a copy of the value stored under key.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.Lock()
	v, ok := r.entries[key]
	r.mu.Unlock()
	return v, ok
}

// Take removes and returns the value stored under key. Of any number of
// concurrent Take calls for one key, at most one reports ok.
func (r *Registry[K, V]) Take(key K) (V, bool) {
	r.mu.Lock()
	v, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()
	return v, ok
}

// Delete drops key, reporting whether it was present.
func (r *Registry[K, V]) Delete(key K) bool {
	_, ok := r.Take(key)
	return ok
}

// Update replaces the value stored under key with the result of fn when fn
// reports true. A missing key stays missing. fn runs under the lock.
func (r *Registry[K, V]) Update(key K, fn func(V) (V, bool)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.entries[key]
	if !ok {
		return false
	}
	next, ok := fn(v)
	if !ok {
		return false
	}
	r.entries[key] = next
	return true
}

// DeleteIf drops key when match reports true for its current value. match
// runs under the lock.
func (r *Registry[K, V]) DeleteIf(key K, match func(V) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.entries[key]
	if !ok || !match(v) {
		return false
	}
	delete(r.entries, key)
	return true
}

// Len reports the number of live entries.
func (r *Registry[K, V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes every entry for which expired returns true and reports how
// many were removed.
func (r *Registry[K, V]) Sweep(expired func(V) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for k, v := range r.entries {
		if expired(v) {
			delete(r.entries, k)
			removed++
		}
	}
	return removed
}
