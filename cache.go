package assetcache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/modfox/assetcache/source"
)

// Cache owns every cached asset: a concurrent Key -> entry map, the
// dependency graph across composite assets, and the single-flight load path.
// Entries are created lazily on first load and live for the Cache's lifetime;
// hot reload commits new values into existing entries so handles issued
// earlier keep observing fresh data.
//
// A Cache is an explicitly constructed value. Pass it where it is needed;
// there is no process-wide instance.
type Cache struct {
	src   source.Source
	reg   *Registry
	log   Logger
	hooks Hooks

	graph *depGraph

	mu      sync.RWMutex
	entries map[Key]*entry

	sf singleflight.Group
}

// Options configures a Cache. Only Source is required.
type Options struct {
	// Source supplies raw asset bytes. Required.
	Source source.Source

	// Registry holds the asset type definitions. A fresh empty registry is
	// created when nil; register types through Cache.Registry afterwards.
	Registry *Registry

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
}

func New(opts Options) (*Cache, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("assetcache: source is required")
	}
	c := &Cache{
		src:     opts.Source,
		reg:     opts.Registry,
		graph:   newDepGraph(),
		entries: make(map[Key]*entry),
	}
	if c.reg == nil {
		c.reg = NewRegistry()
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return c, nil
}

// Registry returns the type registry backing this cache.
func (c *Cache) Registry() *Registry { return c.reg }

// Load returns a handle for the asset named id, loading it on first use.
//
// For an uncached Key exactly one caller performs the load; concurrent
// callers for the same Key wait for that result and all receive the same
// handle or the same error. Errors are never cached - the next call retries
// from scratch.
func Load[T any](ctx context.Context, c *Cache, id string) (Handle[T], error) {
	def, err := definitionFor[T](c.reg)
	if err != nil {
		return Handle[T]{}, err
	}
	key := Key{Type: def.tag, ID: NewID(id)}
	if key.ID.IsZero() {
		return Handle[T]{}, fmt.Errorf("assetcache: empty asset id %q", id)
	}

	if c.lookup(key) != nil {
		return Handle[T]{c: c, key: key}, nil
	}

	ctx, err = pushLoadStack(ctx, key)
	if err != nil {
		return Handle[T]{}, err
	}

	_, err, _ = c.sf.Do(key.String(), func() (any, error) {
		if c.lookup(key) != nil {
			return nil, nil
		}
		v, children, err := c.produce(ctx, def, key)
		if err != nil {
			return nil, err
		}
		c.install(key, v)
		c.graph.record(key, children)
		return nil, nil
	})
	if err != nil {
		return Handle[T]{}, err
	}
	return Handle[T]{c: c, key: key}, nil
}

// Lookup returns a handle only when the asset is already cached. It never
// touches the source.
func Lookup[T any](c *Cache, id string) (Handle[T], bool) {
	def, err := definitionFor[T](c.reg)
	if err != nil {
		return Handle[T]{}, false
	}
	key := Key{Type: def.tag, ID: NewID(id)}
	if c.lookup(key) == nil {
		return Handle[T]{}, false
	}
	return Handle[T]{c: c, key: key}, true
}

// produce runs the full load path for key: read bytes, decode, and run the
// optional composite build. It returns the new value together with the
// dependency edges collected during the build. No lock is held while it runs.
func (c *Cache) produce(ctx context.Context, def *definition, key Key) (any, []Key, error) {
	raw, err := c.src.Read(key.ID.String(), def.ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, nil, &LoadError{Key: key, Stage: StageRead, Err: err}
	}

	v, err := def.decode(raw)
	if err != nil {
		return nil, nil, &LoadError{Key: key, Stage: StageDecode, Err: err}
	}

	if def.build == nil {
		return v, nil, nil
	}
	res := newResolver(c, key)
	v, err = def.build(ctx, res, v)
	if err != nil {
		return nil, nil, &LoadError{Key: key, Stage: StageBuild, Err: err}
	}
	return v, res.keys(), nil
}

// reloadKey re-runs the load path for an already cached Key and commits the
// result into the existing entry. The entry lock is released before any
// notification goes out.
func (c *Cache) reloadKey(ctx context.Context, key Key) (uint64, error) {
	def, ok := c.reg.lookupTag(key.Type)
	if !ok {
		return 0, fmt.Errorf("%w for tag %q", ErrNoDefinition, key.Type)
	}
	e := c.lookup(key)
	if e == nil {
		return 0, &LoadError{Key: key, Stage: StageRead, Err: ErrNotFound}
	}

	ctx, err := pushLoadStack(ctx, key)
	if err != nil {
		return 0, err
	}
	v, children, err := c.produce(ctx, def, key)
	if err != nil {
		return 0, err
	}

	gen := e.commit(v)
	c.graph.record(key, children)
	c.log.Debug("reload committed", Fields{"key": key.String(), "gen": gen})
	return gen, nil
}

func (c *Cache) lookup(key Key) *entry {
	c.mu.RLock()
	e := c.entries[key]
	c.mu.RUnlock()
	return e
}

func (c *Cache) install(key Key, v any) {
	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = newEntry(v)
	}
	c.mu.Unlock()
}

// candidateKeys maps a changed file path to the cached Keys it backs. One
// path may back several typed Keys when multiple registered types share the
// extension; each reloads independently.
func (c *Cache) candidateKeys(path string) []Key {
	id, ext, ok := c.src.IDFor(path)
	if !ok {
		return nil
	}
	nid := NewID(id)
	if nid.IsZero() {
		return nil
	}
	var keys []Key
	for _, def := range c.reg.lookupExt(ext) {
		k := Key{Type: def.tag, ID: nid}
		if c.lookup(k) != nil {
			keys = append(keys, k)
		}
	}
	sortKeys(keys)
	return keys
}

// invalidateSourceBytes drops any raw-bytes caching for path when the source
// supports it (see source.Cached).
func (c *Cache) invalidateSourceBytes(path string) {
	if inv, ok := c.src.(interface{ Invalidate(path string) }); ok {
		inv.Invalidate(path)
	}
}
