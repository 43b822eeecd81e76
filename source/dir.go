package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir serves assets from a filesystem directory tree. The logical id
// "ui.menus.main" with extension ".json" maps to <root>/ui/menus/main.json.
type Dir struct {
	root string
}

var _ Source = (*Dir)(nil)

// NewDir creates a filesystem source rooted at root. The root is cleaned but
// not required to exist yet; reads of a missing tree simply report not-exist.
func NewDir(root string) *Dir {
	return &Dir{root: filepath.Clean(root)}
}

// Root returns the cleaned root directory.
func (d *Dir) Root() string { return d.root }

func (d *Dir) Read(id, ext string) ([]byte, error) {
	return os.ReadFile(d.PathOf(id, ext))
}

func (d *Dir) PathOf(id, ext string) string {
	rel := strings.ReplaceAll(id, ".", string(filepath.Separator))
	return filepath.Join(d.root, rel) + ext
}

func (d *Dir) IDFor(path string) (string, string, bool) {
	rel, err := filepath.Rel(d.root, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", "", false
	}
	ext := filepath.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	if stem == "" {
		return "", "", false
	}
	id := strings.ReplaceAll(filepath.ToSlash(stem), "/", ".")
	return id, ext, true
}

func (d *Dir) Entries(dir, ext string) ([]string, error) {
	base := d.root
	if dir != "" {
		base = filepath.Join(d.root, strings.ReplaceAll(dir, ".", string(filepath.Separator)))
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", base, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ext {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		if stem == "" {
			continue
		}
		if dir == "" {
			ids = append(ids, stem)
		} else {
			ids = append(ids, dir+"."+stem)
		}
	}
	return ids, nil
}
