// Package asynchook decouples hook implementations from the reload worker.
// The worker calls hooks inline between commits; wrapping a slow
// implementation (network metrics push, chatty logger) keeps the reload
// pipeline moving. Events are dropped when the queue is full.
package asynchook

import (
	"sync"
	"time"

	assetcache "github.com/modfox/assetcache"
)

type Hooks struct {
	inner assetcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ assetcache.Hooks = (*Hooks)(nil)

func New(inner assetcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and waits for the delivery goroutines.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ReloadCommitted(k assetcache.Key, gen uint64) {
	h.try(func() { h.inner.ReloadCommitted(k, gen) })
}
func (h *Hooks) ReloadFailed(k assetcache.Key, err error) {
	h.try(func() { h.inner.ReloadFailed(k, err) })
}
func (h *Hooks) ReloadSkipped(k, failed assetcache.Key) {
	h.try(func() { h.inner.ReloadSkipped(k, failed) })
}
func (h *Hooks) BatchStarted(size int) { h.try(func() { h.inner.BatchStarted(size) }) }
func (h *Hooks) BatchFinished(size int, took time.Duration) {
	h.try(func() { h.inner.BatchFinished(size, took) })
}
func (h *Hooks) WatchError(err error) { h.try(func() { h.inner.WatchError(err) }) }
