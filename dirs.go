package assetcache

import (
	"context"
	"sort"
)

// DirHandle references every asset of one type under a logical directory.
//
// The entry list is fixed at LoadDir time: files added or removed afterwards
// do not join or leave the handle. The assets themselves still hot-reload
// individually - handles returned from Handles observe fresh values like any
// other handle.
type DirHandle[T any] struct {
	c   *Cache
	dir ID
	ids []ID
}

// LoadDir scans the source for every asset of type T directly under dir and
// loads each through the normal path. Individual load failures do not fail
// the scan; the failing ids stay listed and simply have no cached value until
// a later load or reload succeeds.
func LoadDir[T any](ctx context.Context, c *Cache, dir string) (DirHandle[T], error) {
	def, err := definitionFor[T](c.reg)
	if err != nil {
		return DirHandle[T]{}, err
	}
	dirID := NewID(dir)

	names, err := c.src.Entries(dirID.String(), def.ext)
	if err != nil {
		return DirHandle[T]{}, &LoadError{
			Key:   Key{Type: def.tag, ID: dirID},
			Stage: StageRead,
			Err:   err,
		}
	}

	ids := make([]ID, 0, len(names))
	for _, name := range names {
		id := NewID(name)
		if id.IsZero() {
			continue
		}
		if _, err := Load[T](ctx, c, id.String()); err != nil {
			c.log.Debug("dir entry load failed", Fields{"id": id.String(), "err": err})
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].raw < ids[j].raw })

	return DirHandle[T]{c: c, dir: dirID, ids: ids}, nil
}

// Dir returns the logical directory this handle was loaded from.
func (d DirHandle[T]) Dir() ID { return d.dir }

// IDs returns the ids found at load time, loaded or not.
func (d DirHandle[T]) IDs() []ID {
	out := make([]ID, len(d.ids))
	copy(out, d.ids)
	return out
}

// Handles returns a handle for every entry that is currently cached. It does
// no IO.
func (d DirHandle[T]) Handles() []Handle[T] {
	out := make([]Handle[T], 0, len(d.ids))
	for _, id := range d.ids {
		if h, ok := Lookup[T](d.c, id.String()); ok {
			out = append(out, h)
		}
	}
	return out
}

// Len returns the number of ids found at load time.
func (d DirHandle[T]) Len() int { return len(d.ids) }
