// Package keylock provides per-key mutual exclusion. It serializes
// operations that target the same key while letting operations on
// different keys proceed concurrently.
package keylock

import "sync"

// entry is a reference-counted mutex for a single key.
type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex hands out a lock per key. Locks for keys nobody holds or
// waits on are released from memory, so the map does not grow with the
// total number of keys ever seen.
//
// Example usage:
//
//	unlock := locks.Lock(orderID.String())
//	defer unlock()
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking while another caller holds it.
// The returned function releases the lock and must be called exactly once.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.entries, key)
			}
			k.mu.Unlock()
		})
	}
}
