// Package source abstracts where raw asset bytes live. The cache core reads
// through this interface only; ids are normalized logical names
// ('.'-separated, no extension) and extensions always carry the leading dot.
package source

// Source supplies raw asset bytes and the id<->path mapping the reload
// pipeline needs. Implementations must be safe for concurrent use.
type Source interface {
	// Read returns the raw bytes for id with the given extension. A missing
	// asset is reported with an error satisfying errors.Is(err,
	// fs.ErrNotExist).
	Read(id, ext string) ([]byte, error)

	// PathOf returns the backing path for id with the given extension,
	// whether or not it exists.
	PathOf(id, ext string) string

	// IDFor maps a backing path to (id, ext). ok is false when the path lies
	// outside this source.
	IDFor(path string) (id, ext string, ok bool)

	// Entries lists the ids of every asset with the given extension directly
	// under the logical directory dir ("" for the root). It does not recurse.
	Entries(dir, ext string) ([]string, error)
}
