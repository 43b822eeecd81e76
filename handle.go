package assetcache

// Handle is a stable, non-owning reference to one cache slot. It re-resolves
// through the Cache on every access and never stores the value itself, so it
// stays valid across arbitrarily many reloads of its target.
//
// The zero Handle is not usable; obtain handles from Load, Lookup or Resolve.
type Handle[T any] struct {
	c   *Cache
	key Key
}

// Read returns a snapshot of the current value together with its generation.
func (h Handle[T]) Read() (T, uint64) {
	var zero T
	e := h.c.lookup(h.key)
	if e == nil {
		return zero, 0
	}
	v, gen := e.snapshot()
	t, _ := v.(T)
	return t, gen
}

// Value returns just the current value.
func (h Handle[T]) Value() T {
	v, _ := h.Read()
	return v
}

// Generation returns the current generation of the target slot.
func (h Handle[T]) Generation() uint64 {
	e := h.c.lookup(h.key)
	if e == nil {
		return 0
	}
	return e.generation()
}

// ReloadedSince reports whether the slot was re-committed after the given
// generation was observed.
func (h Handle[T]) ReloadedSince(gen uint64) bool {
	return h.Generation() > gen
}

// Key returns the cache slot this handle points at.
func (h Handle[T]) Key() Key { return h.key }

// ID returns the logical name of the target asset.
func (h Handle[T]) ID() ID { return h.key.ID }

// Same reports whether two handles alias the same slot of the same cache.
func (h Handle[T]) Same(other Handle[T]) bool {
	return h.c == other.c && h.key == other.key
}
