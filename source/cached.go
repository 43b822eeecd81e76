package source

import "github.com/modfox/assetcache/bytecache"

// Cached layers a bytecache provider over another source, keyed by backing
// path. It avoids hitting the filesystem for assets that are read repeatedly
// (directory scans, shared sub-assets).
//
// The reload worker calls Invalidate for every changed path before mapping it
// to Keys, so a reload never decodes stale bytes.
type Cached struct {
	inner Source
	bytes bytecache.Provider
}

var _ Source = (*Cached)(nil)

func NewCached(inner Source, bytes bytecache.Provider) *Cached {
	return &Cached{inner: inner, bytes: bytes}
}

func (c *Cached) Read(id, ext string) ([]byte, error) {
	path := c.inner.PathOf(id, ext)
	if b, ok := c.bytes.Get(path); ok {
		return b, nil
	}
	b, err := c.inner.Read(id, ext)
	if err != nil {
		return nil, err
	}
	c.bytes.Set(path, b)
	return b, nil
}

func (c *Cached) PathOf(id, ext string) string { return c.inner.PathOf(id, ext) }

func (c *Cached) IDFor(path string) (string, string, bool) { return c.inner.IDFor(path) }

func (c *Cached) Entries(dir, ext string) ([]string, error) { return c.inner.Entries(dir, ext) }

// Invalidate drops the cached bytes for one backing path.
func (c *Cached) Invalidate(path string) { c.bytes.Del(path) }

// Close releases the underlying provider.
func (c *Cached) Close() error { return c.bytes.Close() }
