package assetcache

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestLoadErrorUnwrap(t *testing.T) {
	key := Key{Type: "settings", ID: NewID("game.settings")}
	err := &LoadError{Key: key, Stage: StageRead, Err: fs.ErrNotExist}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("LoadError must unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "settings:game.settings") || !strings.Contains(msg, "read") {
		t.Fatalf("Error() = %q", msg)
	}
}

func TestCycleError(t *testing.T) {
	a := Key{Type: "sprite", ID: NewID("a")}
	b := Key{Type: "sprite", ID: NewID("b")}
	err := &CycleError{Path: []Key{a, b, a}}

	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatal("CycleError must unwrap to ErrCyclicDependency")
	}
	if msg := err.Error(); !strings.Contains(msg, "sprite:a -> sprite:b -> sprite:a") {
		t.Fatalf("Error() = %q", msg)
	}

	empty := &CycleError{}
	if empty.Error() != ErrCyclicDependency.Error() {
		t.Fatalf("empty path Error() = %q", empty.Error())
	}
}
