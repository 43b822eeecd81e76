// Package sloghooks routes the cache's observability side-channel to
// log/slog. Reload failures are the one signal an application editing files
// live really wants to see, so those log at error level; the rest stays at
// debug/info.
package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	assetcache "github.com/modfox/assetcache"
)

type Options struct {
	// CommitEvery samples committed-reload logs to avoid floods during big
	// batches; 0/1 = log all.
	CommitEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	commitCtr atomic.Uint64
}

var _ assetcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ReloadCommitted(key assetcache.Key, gen uint64) {
	if h.l == nil || !sample(h.opts.CommitEvery, &h.commitCtr) {
		return
	}
	h.l.Debug("assetcache.reload_committed",
		"key", key.String(),
		"gen", gen)
}

func (h *Hooks) ReloadFailed(key assetcache.Key, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("assetcache.reload_failed",
		"key", key.String(),
		"err", err)
}

func (h *Hooks) ReloadSkipped(key, failed assetcache.Key) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.reload_skipped",
		"key", key.String(),
		"failed_dep", failed.String())
}

func (h *Hooks) BatchStarted(size int) {
	if h.l == nil {
		return
	}
	h.l.Debug("assetcache.batch_started", "size", size)
}

func (h *Hooks) BatchFinished(size int, took time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Info("assetcache.batch_finished",
		"size", size,
		"took", took)
}

func (h *Hooks) WatchError(err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.watch_error", "err", err)
}
