// Package prom exports the cache's reload side-channel as Prometheus
// metrics: reload outcomes by result, batch sizes and batch durations.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	assetcache "github.com/modfox/assetcache"
)

type Hooks struct {
	reloads     *prometheus.CounterVec
	batchSize   prometheus.Histogram
	batchTook   prometheus.Histogram
	watchErrors prometheus.Counter
}

var _ assetcache.Hooks = (*Hooks)(nil)

// New registers the collectors with reg and returns the hooks. Pass
// prometheus.DefaultRegisterer for the global registry.
func New(reg prometheus.Registerer) *Hooks {
	factory := promauto.With(reg)
	return &Hooks{
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetcache",
			Name:      "reloads_total",
			Help:      "Reload outcomes per key, by result.",
		}, []string{"result"}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assetcache",
			Name:      "reload_batch_size",
			Help:      "Keys per reload batch after dependency expansion.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		batchTook: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assetcache",
			Name:      "reload_batch_duration_seconds",
			Help:      "Wall time per reload batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		watchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "assetcache",
			Name:      "watch_errors_total",
			Help:      "Errors reported by the filesystem event source.",
		}),
	}
}

func (h *Hooks) ReloadCommitted(assetcache.Key, uint64) {
	h.reloads.WithLabelValues("committed").Inc()
}

func (h *Hooks) ReloadFailed(assetcache.Key, error) {
	h.reloads.WithLabelValues("failed").Inc()
}

func (h *Hooks) ReloadSkipped(assetcache.Key, assetcache.Key) {
	h.reloads.WithLabelValues("skipped").Inc()
}

func (h *Hooks) BatchStarted(int) {}

func (h *Hooks) BatchFinished(size int, took time.Duration) {
	h.batchSize.Observe(float64(size))
	h.batchTook.Observe(took.Seconds())
}

func (h *Hooks) WatchError(error) {
	h.watchErrors.Inc()
}
