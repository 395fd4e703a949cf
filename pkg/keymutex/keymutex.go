// Package keymutex provides per-key mutual exclusion. The wallet document is
// rewritten whole on every mutating operation, so concurrent requests from the
// same user must be serialized or the last write wins.
package keymutex

import "sync"

// KeyMutex hands out one mutex per key. Mutexes are never released; the key
// space here is user IDs, which is small enough for a demo deployment.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyMutex) Lock(key int64) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyMutex) Unlock(key int64) {
	k.get(key).Unlock()
}

func (k *KeyMutex) get(key int64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
