package fswatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	assetcache "github.com/modfox/assetcache"
)

func TestKeepFiltering(t *testing.T) {
	w := &Watcher{cfg: Config{Extensions: []string{".json", ".TEX"}, SkipHidden: true}}

	cases := []struct {
		path string
		want bool
	}{
		{"/a/main.json", true},
		{"/a/skin.tex", true}, // extension match is case-insensitive
		{"/a/notes.txt", false},
		{"/a/.main.json", false}, // hidden
		{"/a/noext", false},
	}
	for _, tc := range cases {
		if got := w.keep(tc.path); got != tc.want {
			t.Errorf("keep(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}

	all := &Watcher{cfg: Config{}}
	if !all.keep("/a/anything.xyz") {
		t.Error("empty extension list must keep everything")
	}
}

func TestMapOp(t *testing.T) {
	cases := []struct {
		in       fsnotify.Op
		want     assetcache.Op
		relevant bool
	}{
		{fsnotify.Write, assetcache.OpModified, true},
		{fsnotify.Create, assetcache.OpModified, true},
		{fsnotify.Remove, assetcache.OpRemoved, true},
		{fsnotify.Rename, assetcache.OpRenamed, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tc := range cases {
		op, relevant := mapOp(tc.in)
		if relevant != tc.relevant || (relevant && op != tc.want) {
			t.Errorf("mapOp(%v) = (%v, %v), want (%v, %v)", tc.in, op, relevant, tc.want, tc.relevant)
		}
	}
}

func TestWatcherDeliversWrites(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Extensions: []string{".json"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.Add(root); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"v":2}`), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == path && ev.Op == assetcache.OpModified {
				return
			}
		case <-deadline:
			t.Fatal("no modified event for the written file")
		}
	}
}

func TestWatcherSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	hidden := filepath.Join(root, ".git")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{SkipHidden: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.Add(root); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Changes inside the hidden tree never surface.
	if err := os.WriteFile(filepath.Join(hidden, "index"), []byte(`x`), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v from a hidden directory", ev)
	case <-time.After(200 * time.Millisecond):
	}
}
