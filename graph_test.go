package assetcache

import (
	"reflect"
	"testing"
)

func k(typ, id string) Key { return Key{Type: typ, ID: NewID(id)} }

func TestGraphRecordAndDependents(t *testing.T) {
	g := newDepGraph()
	level := k("level", "one")
	texA := k("texture", "a")
	texB := k("texture", "b")

	g.record(level, []Key{texA, texB})

	if got := g.dependentsOf(texA); !reflect.DeepEqual(got, []Key{level}) {
		t.Fatalf("dependentsOf(texA) = %v", got)
	}
	if got := g.childrenOf(level); !reflect.DeepEqual(got, []Key{texA, texB}) {
		t.Fatalf("childrenOf(level) = %v", got)
	}
}

func TestGraphRecordReplacesEdges(t *testing.T) {
	g := newDepGraph()
	level := k("level", "one")
	texA := k("texture", "a")
	texB := k("texture", "b")

	g.record(level, []Key{texA})
	g.record(level, []Key{texB})

	if got := g.dependentsOf(texA); len(got) != 0 {
		t.Fatalf("stale edge survived: %v", got)
	}
	if got := g.dependentsOf(texB); !reflect.DeepEqual(got, []Key{level}) {
		t.Fatalf("dependentsOf(texB) = %v", got)
	}

	// Dropping every edge clears the parent entirely.
	g.record(level, nil)
	if got := g.childrenOf(level); len(got) != 0 {
		t.Fatalf("childrenOf after clear = %v", got)
	}
}

func TestGraphClosure(t *testing.T) {
	g := newDepGraph()
	tex := k("texture", "a")
	sprite := k("sprite", "a")
	level := k("level", "one")
	world := k("world", "main")
	other := k("level", "two")

	g.record(sprite, []Key{tex})
	g.record(level, []Key{sprite})
	g.record(world, []Key{level, sprite})
	g.record(other, []Key{k("texture", "b")})

	got := g.closure([]Key{tex})
	want := map[Key]struct{}{tex: {}, sprite: {}, level: {}, world: {}}
	if len(got) != len(want) {
		t.Fatalf("closure = %v", got)
	}
	for _, key := range got {
		if _, ok := want[key]; !ok {
			t.Fatalf("unexpected key in closure: %v", key)
		}
	}
}

func TestGraphOrderChildrenFirst(t *testing.T) {
	g := newDepGraph()
	tex := k("texture", "a")
	sprite := k("sprite", "a")
	world := k("world", "main")
	g.record(sprite, []Key{tex})
	g.record(world, []Key{sprite, tex})

	order := g.order([]Key{world, sprite, tex})
	pos := make(map[Key]int, len(order))
	for i, key := range order {
		pos[key] = i
	}
	if pos[tex] > pos[sprite] || pos[sprite] > pos[world] {
		t.Fatalf("order = %v", order)
	}
}

func TestGraphOrderDeterministic(t *testing.T) {
	g := newDepGraph()
	union := []Key{k("a", "3"), k("a", "1"), k("a", "2")}
	first := g.order(union)
	for i := 0; i < 10; i++ {
		if got := g.order(union); !reflect.DeepEqual(got, first) {
			t.Fatalf("order not reproducible: %v vs %v", got, first)
		}
	}
	// No edges: pure key order.
	want := []Key{k("a", "1"), k("a", "2"), k("a", "3")}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("order = %v, want %v", first, want)
	}
}
