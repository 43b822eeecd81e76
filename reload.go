package assetcache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Op classifies a filesystem event.
type Op uint8

const (
	OpModified Op = iota + 1
	OpRemoved
	OpRenamed
)

func (o Op) String() string {
	switch o {
	case OpModified:
		return "modified"
	case OpRemoved:
		return "removed"
	case OpRenamed:
		return "renamed"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Event is one filesystem change notification. The worker is agnostic to how
// events are produced; the fswatch subpackage provides an fsnotify-backed
// EventSource.
type Event struct {
	Path string
	Op   Op
}

// EventSource is a lazy, infinite stream of filesystem events. Events and
// Errors stay open until Close.
type EventSource interface {
	Events() <-chan Event
	Errors() <-chan error
	Close() error
}

// ReloadRequest is one pending reload, deduplicated by Key within a batch.
// Cause keeps the most recent event kind that scheduled it.
type ReloadRequest struct {
	Key   Key
	Cause Op
}

// WorkerOptions tunes a ReloadWorker.
type WorkerOptions struct {
	// DebounceInterval is how long the worker waits after the last event
	// before freezing the pending set into a batch. Editors and OSes write
	// files in bursts; the window coalesces each burst into one reload.
	// 0 => 100ms.
	DebounceInterval time.Duration

	Logger Logger // nil => the cache's logger
	Hooks  Hooks  // nil => the cache's hooks
}

const defaultDebounce = 100 * time.Millisecond

// ReloadWorker consumes filesystem events and re-derives cached assets.
//
// It runs one loop with three states: idle, debouncing (merging events into a
// pending set while extending the deadline) and processing (reloading a
// frozen batch in dependency order). Exactly one worker may drive a Cache;
// debounce and ordering state is per-instance.
//
// A failed reload never aborts the batch and never reaches application
// goroutines: the failure goes to Hooks, the Key and everything downstream of
// it keep their previously committed values, and the next relevant event
// retries them.
type ReloadWorker struct {
	c        *Cache
	events   EventSource
	debounce time.Duration
	log      Logger
	hooks    Hooks

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewReloadWorker(c *Cache, events EventSource, opts WorkerOptions) *ReloadWorker {
	return &ReloadWorker{
		c:        c,
		events:   events,
		debounce: coalesce(opts.DebounceInterval, defaultDebounce),
		log:      coalesce[Logger](opts.Logger, c.log),
		hooks:    coalesce[Hooks](opts.Hooks, c.hooks),
	}
}

// Start launches the worker loop. It fails when the worker is already
// running.
func (w *ReloadWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("assetcache: reload worker already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.run(w.stopCh, w.doneCh)
	w.log.Info("reload worker started", Fields{"debounce": w.debounce.String()})
	return nil
}

// Stop signals the loop and waits for it to finish. A commit in progress
// always completes before Stop returns; the worker is never interrupted
// mid-write. Stopping a stopped worker is a no-op.
func (w *ReloadWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	close(stopCh)
	<-doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	w.log.Info("reload worker stopped", nil)
}

func (w *ReloadWorker) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	pending := make(map[Key]Op)
	var timer *time.Timer
	var deadline <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	events := w.events.Events()
	errs := w.events.Errors()

	for {
		select {
		case <-stopCh:
			return

		case ev, ok := <-events:
			if !ok {
				// Source exhausted; nothing further can arrive.
				w.log.Warn("event source closed", nil)
				events = nil
				continue
			}
			w.c.invalidateSourceBytes(ev.Path)
			keys := w.c.candidateKeys(ev.Path)
			if len(keys) == 0 {
				continue
			}
			for _, k := range keys {
				pending[k] = ev.Op
			}
			w.log.Debug("file event", Fields{"path": ev.Path, "op": ev.Op.String(), "keys": len(keys)})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			deadline = timer.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.hooks.WatchError(err)
			w.log.Warn("event source error", Fields{"err": err})

		case <-deadline:
			deadline = nil
			batch := freezeBatch(pending)
			pending = make(map[Key]Op)
			if w.process(batch, stopCh) {
				return
			}
		}
	}
}

// freezeBatch turns the pending set into a deterministically ordered batch.
func freezeBatch(pending map[Key]Op) []ReloadRequest {
	batch := make([]ReloadRequest, 0, len(pending))
	for k, op := range pending {
		batch = append(batch, ReloadRequest{Key: k, Cause: op})
	}
	sort.Slice(batch, func(i, j int) bool { return keyLess(batch[i].Key, batch[j].Key) })
	return batch
}

// process reloads one batch: expand the seeds to their transitive-dependents
// closure, order the union so every Key runs after its in-union dependencies,
// then reload Key by Key. It returns true when a stop was requested; the
// current commit always finishes first.
func (w *ReloadWorker) process(batch []ReloadRequest, stopCh chan struct{}) (stopped bool) {
	if len(batch) == 0 {
		return false
	}
	seeds := make([]Key, len(batch))
	for i, req := range batch {
		seeds[i] = req.Key
	}
	union := w.c.graph.closure(seeds)
	order := w.c.graph.order(union)

	inUnion := make(map[Key]struct{}, len(order))
	for _, k := range order {
		inUnion[k] = struct{}{}
	}

	start := time.Now()
	w.hooks.BatchStarted(len(order))
	w.log.Debug("reload batch", Fields{"seeds": len(seeds), "keys": len(order)})

	failed := make(map[Key]Key) // key -> nearest failed dependency (or itself)
	for _, key := range order {
		select {
		case <-stopCh:
			return true
		default:
		}

		if bad, skip := w.skipReason(key, inUnion, failed); skip {
			failed[key] = bad
			w.hooks.ReloadSkipped(key, bad)
			w.log.Warn("reload skipped", Fields{"key": key.String(), "failed_dep": bad.String()})
			continue
		}

		gen, err := w.c.reloadKey(context.Background(), key)
		if err != nil {
			failed[key] = key
			w.hooks.ReloadFailed(key, err)
			w.log.Error("reload failed", Fields{"key": key.String(), "err": err})
			continue
		}
		w.hooks.ReloadCommitted(key, gen)
	}

	w.hooks.BatchFinished(len(order), time.Since(start))
	return false
}

// skipReason reports whether key must be skipped because a dependency inside
// the batch failed, and which one.
func (w *ReloadWorker) skipReason(key Key, inUnion map[Key]struct{}, failed map[Key]Key) (Key, bool) {
	for _, child := range w.c.graph.childrenOf(key) {
		if _, ok := inUnion[child]; !ok {
			continue
		}
		if bad, ok := failed[child]; ok {
			return bad, true
		}
	}
	return Key{}, false
}
