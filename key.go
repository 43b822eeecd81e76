package assetcache

import "strings"

// ID is the normalized logical name of an asset, independent of where and in
// which format it is stored. Segments are joined with '.' and never carry a
// file extension. Two IDs are equal iff their normalized forms are equal.
type ID struct {
	raw string
}

// NewID normalizes a logical name into an ID. Both '.' and path separators
// ('/', '\') are accepted as segment delimiters; empty segments and
// surrounding whitespace are dropped.
//
//	NewID("ui/menus/main") == NewID("ui.menus.main")
func NewID(name string) ID {
	name = strings.TrimSpace(name)
	if name == "" {
		return ID{}
	}
	segs := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '/' || r == '\\'
	})
	out := segs[:0]
	for _, s := range segs {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return ID{raw: strings.Join(out, ".")}
}

func (id ID) String() string { return id.raw }

// IsZero reports whether the ID is empty after normalization.
func (id ID) IsZero() bool { return id.raw == "" }

// Segments returns the normalized path segments of the ID.
func (id ID) Segments() []string {
	if id.raw == "" {
		return nil
	}
	return strings.Split(id.raw, ".")
}

// Key identifies exactly one cache slot: the pair of a registered type tag and
// a normalized ID. Keys are value-equal and usable as map keys.
type Key struct {
	Type string
	ID   ID
}

func (k Key) String() string { return k.Type + ":" + k.ID.String() }

// keyLess imposes a total order on Keys. The order carries no meaning; it only
// makes batch processing reproducible.
func keyLess(a, b Key) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.ID.raw < b.ID.raw
}
