package bigcache

import (
	"bytes"
	"testing"
)

func TestProviderRoundTrip(t *testing.T) {
	p, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	if _, ok := p.Get("a"); ok {
		t.Fatal("hit on an empty cache")
	}
	if !p.Set("a", []byte("payload")) {
		t.Fatal("Set rejected")
	}
	b, ok := p.Get("a")
	if !ok || !bytes.Equal(b, []byte("payload")) {
		t.Fatalf("Get = %q, %v", b, ok)
	}

	p.Del("a")
	if _, ok := p.Get("a"); ok {
		t.Fatal("hit after Del")
	}
	p.Del("never-set") // no-op
}
