package assetcache

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/modfox/assetcache/format"
)

// Definition declares how one asset type loads.
//
// Format parses raw bytes into T and is required; it is usually one of the
// backends in the format subpackage. Build is optional: composite assets use
// it to pull in sub-assets through the Resolver after decoding, which is the
// sole mechanism that produces dependency edges.
type Definition[T any] struct {
	// Tag is the stable per-type discriminator used in Keys. Required and
	// unique within a Registry.
	Tag string

	// Ext is the file extension of the backing files, with or without the
	// leading dot. Required; it drives both path lookup and the reverse
	// path-to-Key mapping used by hot reload.
	Ext string

	// Format decodes raw bytes into T. Required.
	Format format.Decoder[T]

	// Build post-processes the decoded value. Sub-assets loaded through r
	// become dependencies of this asset. Optional.
	Build func(ctx context.Context, r *Resolver, v T) (T, error)
}

// definition is the type-erased form stored in the registry.
type definition struct {
	tag    string
	ext    string
	gotype reflect.Type
	decode func([]byte) (any, error)
	build  func(ctx context.Context, r *Resolver, v any) (any, error)
}

// Registry maps asset types to their definitions. One Go type has exactly one
// definition and one tag; lookups run by Go type on the application surface
// and by tag on the reload path.
type Registry struct {
	mu     sync.RWMutex
	byTag  map[string]*definition
	byType map[reflect.Type]*definition
	byExt  map[string][]*definition
}

func NewRegistry() *Registry {
	return &Registry{
		byTag:  make(map[string]*definition),
		byType: make(map[reflect.Type]*definition),
		byExt:  make(map[string][]*definition),
	}
}

// Register installs a definition for T. It fails when the tag or the Go type
// is already taken.
func Register[T any](r *Registry, d Definition[T]) error {
	if d.Tag == "" {
		return fmt.Errorf("assetcache: register: tag is required")
	}
	if d.Ext == "" {
		return fmt.Errorf("assetcache: register %q: ext is required", d.Tag)
	}
	if d.Format == nil {
		return fmt.Errorf("assetcache: register %q: format is required", d.Tag)
	}
	ext := d.Ext
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	gotype := reflect.TypeOf((*T)(nil)).Elem()
	def := &definition{
		tag:    d.Tag,
		ext:    ext,
		gotype: gotype,
		decode: func(b []byte) (any, error) { return d.Format.Decode(b) },
	}
	if d.Build != nil {
		build := d.Build
		def.build = func(ctx context.Context, r *Resolver, v any) (any, error) {
			return build(ctx, r, v.(T))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byTag[d.Tag]; ok {
		return fmt.Errorf("assetcache: register %q: tag already used by %s", d.Tag, prev.gotype)
	}
	if prev, ok := r.byType[gotype]; ok {
		return fmt.Errorf("assetcache: register %q: type %s already registered as %q", d.Tag, gotype, prev.tag)
	}
	r.byTag[d.Tag] = def
	r.byType[gotype] = def
	r.byExt[ext] = append(r.byExt[ext], def)
	return nil
}

// MustRegister is Register panicking on error. Handy for package-level setup
// in tests and examples.
func MustRegister[T any](r *Registry, d Definition[T]) {
	if err := Register(r, d); err != nil {
		panic(err)
	}
}

func (r *Registry) lookupTag(tag string) (*definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byTag[tag]
	return def, ok
}

func (r *Registry) lookupExt(ext string) []*definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := r.byExt[ext]
	out := make([]*definition, len(defs))
	copy(out, defs)
	return out
}

func definitionFor[T any](r *Registry) (*definition, error) {
	gotype := reflect.TypeOf((*T)(nil)).Elem()
	r.mu.RLock()
	def, ok := r.byType[gotype]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for type %s", ErrNoDefinition, gotype)
	}
	return def, nil
}
