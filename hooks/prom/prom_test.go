package prom

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	assetcache "github.com/modfox/assetcache"
)

func TestHooksCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)

	key := assetcache.Key{Type: "settings", ID: assetcache.NewID("game.settings")}
	h.ReloadCommitted(key, 2)
	h.ReloadCommitted(key, 3)
	h.ReloadFailed(key, errors.New("boom"))
	h.ReloadSkipped(key, key)
	h.BatchStarted(3)
	h.BatchFinished(3, 40*time.Millisecond)
	h.WatchError(errors.New("watch"))

	if got := testutil.ToFloat64(h.reloads.WithLabelValues("committed")); got != 2 {
		t.Fatalf("committed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.reloads.WithLabelValues("failed")); got != 1 {
		t.Fatalf("failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.reloads.WithLabelValues("skipped")); got != 1 {
		t.Fatalf("skipped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.watchErrors); got != 1 {
		t.Fatalf("watch errors = %v, want 1", got)
	}

	if n := testutil.CollectAndCount(reg, "assetcache_reload_batch_size"); n != 1 {
		t.Fatalf("batch size series = %d, want 1", n)
	}
}
