package assetcache

import "sync"

// entry is one cache slot: a type-erased value guarded by its own lock, plus
// a generation counter. The generation starts at 1 on the first successful
// load and only ever increases. Readers never observe a partially written
// value; the lock is held only for the swap, never across a parse.
type entry struct {
	mu  sync.RWMutex
	val any
	gen uint64
}

func newEntry(v any) *entry {
	return &entry{val: v, gen: 1}
}

// snapshot returns the current value and its generation under a short-lived
// read lock.
func (e *entry) snapshot() (any, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.val, e.gen
}

func (e *entry) generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gen
}

// commit atomically replaces the value and bumps the generation. The lock is
// released before the caller notifies anyone, so a dependent whose reload
// reads this entry never deadlocks on it.
func (e *entry) commit(v any) uint64 {
	e.mu.Lock()
	e.val = v
	e.gen++
	gen := e.gen
	e.mu.Unlock()
	return gen
}
