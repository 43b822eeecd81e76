package assetcache

import (
	"context"
	"sync"
)

// Resolver is handed to a Definition's Build step. Sub-assets loaded through
// it are recorded as dependencies of the asset being built, so a later change
// to any of them re-derives this one too.
type Resolver struct {
	c      *Cache
	parent Key

	mu       sync.Mutex
	children map[Key]struct{}
}

func newResolver(c *Cache, parent Key) *Resolver {
	return &Resolver{c: c, parent: parent}
}

// Resolve loads a sub-asset and records the dependency edge. It goes through
// the exact same path as a top-level load: cached values are returned as-is,
// misses run the single-flight load.
func Resolve[T any](ctx context.Context, r *Resolver, id string) (Handle[T], error) {
	h, err := Load[T](ctx, r.c, id)
	if err != nil {
		return Handle[T]{}, err
	}
	r.mu.Lock()
	if r.children == nil {
		r.children = make(map[Key]struct{})
	}
	r.children[h.key] = struct{}{}
	r.mu.Unlock()
	return h, nil
}

func (r *Resolver) keys() []Key {
	r.mu.Lock()
	out := make([]Key, 0, len(r.children))
	for k := range r.children {
		out = append(out, k)
	}
	r.mu.Unlock()
	sortKeys(out)
	return out
}

// loadStackKey carries the chain of Keys currently loading on this call
// chain. Pushing a Key that is already on the chain is a structural cycle:
// blocking on the single-flight slot would deadlock, so the load fails fast
// instead.
type loadStackKey struct{}

func pushLoadStack(ctx context.Context, current Key) (context.Context, error) {
	stack, _ := ctx.Value(loadStackKey{}).([]Key)
	for i := range stack {
		if stack[i] == current {
			cycle := append([]Key(nil), stack[i:]...)
			cycle = append(cycle, current)
			return nil, &CycleError{Path: cycle}
		}
	}
	next := make([]Key, 0, len(stack)+1)
	next = append(next, stack...)
	next = append(next, current)
	return context.WithValue(ctx, loadStackKey{}, next), nil
}
