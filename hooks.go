package assetcache

import "time"

// Hooks is the observability side-channel for the reload pipeline. Reload
// errors never surface to application goroutines; they arrive here instead.
// Implementations MUST be cheap and non-blocking - the reload worker calls
// them inline (wrap with hooks/async if an implementation may stall).
type Hooks interface {
	// A Key was re-committed at the given generation.
	ReloadCommitted(key Key, gen uint64)

	// Re-loading a Key failed; its previously committed value stays
	// authoritative. Called exactly once per failing Key per batch.
	ReloadFailed(key Key, err error)

	// A Key was skipped because one of its dependencies failed in the same
	// batch. failed is the nearest failed or skipped dependency.
	ReloadSkipped(key Key, failed Key)

	// A reload batch started/finished. size counts Keys after closure
	// expansion, not raw filesystem events.
	BatchStarted(size int)
	BatchFinished(size int, took time.Duration)

	// The event source reported an error. The worker keeps running.
	WatchError(err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) ReloadCommitted(Key, uint64)       {}
func (NopHooks) ReloadFailed(Key, error)           {}
func (NopHooks) ReloadSkipped(Key, Key)            {}
func (NopHooks) BatchStarted(int)                  {}
func (NopHooks) BatchFinished(int, time.Duration)  {}
func (NopHooks) WatchError(error)                  {}
