package assetcache

import "testing"

func TestNewIDNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ui.menus.main", "ui.menus.main"},
		{"ui/menus/main", "ui.menus.main"},
		{`ui\menus\main`, "ui.menus.main"},
		{"  ui.menus.main  ", "ui.menus.main"},
		{"ui..menus...main", "ui.menus.main"},
		{"/ui/menus/", "ui.menus"},
		{"single", "single"},
		{"", ""},
		{"   ", ""},
		{"...", ""},
	}
	for _, tc := range cases {
		if got := NewID(tc.in).String(); got != tc.want {
			t.Errorf("NewID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIDEquality(t *testing.T) {
	a := NewID("ui/menus/main")
	b := NewID("ui.menus.main")
	if a != b {
		t.Fatalf("expected %v == %v", a, b)
	}
	if NewID("ui.menus") == NewID("ui.menus.main") {
		t.Fatal("distinct ids compare equal")
	}
}

func TestIDSegments(t *testing.T) {
	segs := NewID("a/b/c").Segments()
	want := []string{"a", "b", "c"}
	if len(segs) != len(want) {
		t.Fatalf("segments = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segments = %v, want %v", segs, want)
		}
	}
	if NewID("").Segments() != nil {
		t.Fatal("zero id should have no segments")
	}
}

func TestKeyOrdering(t *testing.T) {
	a := Key{Type: "config", ID: NewID("a")}
	b := Key{Type: "config", ID: NewID("b")}
	c := Key{Type: "texture", ID: NewID("a")}
	if !keyLess(a, b) || keyLess(b, a) {
		t.Fatal("id ordering broken")
	}
	if !keyLess(a, c) || keyLess(c, a) {
		t.Fatal("type ordering broken")
	}
	if keyLess(a, a) {
		t.Fatal("key less than itself")
	}
}
