// Package assetcache caches typed external resources (configuration, game
// data, media descriptors) by logical name and hot-reloads them when their
// backing files change, without invalidating handles the application already
// holds.
//
// Components:
//   - Cache: Key -> entry map with single-flight loads and per-entry locking.
//   - Registry / Definition[T]: per-type loading contract. Leaf assets decode
//     through a format backend (format subpackage); composite assets
//     additionally pull sub-assets through a Resolver, which is what creates
//     dependency edges.
//   - Handle[T]: stable reference that re-resolves on every read and exposes
//     the slot's generation.
//   - ReloadWorker: debounces filesystem events, expands changed Keys to
//     their transitive dependents, reloads the batch in dependency order and
//     isolates per-Key failures.
//   - source.Source: where raw bytes live (source.Dir for a directory tree,
//     source.Cached to layer a bytecache provider on top).
//   - fswatch: fsnotify-backed EventSource.
//
// Typical use:
//
//	reg := assetcache.NewRegistry()
//	assetcache.MustRegister(reg, assetcache.Definition[Config]{
//	    Tag: "config", Ext: ".yaml", Format: format.YAML[Config]{},
//	})
//	cache, _ := assetcache.New(assetcache.Options{
//	    Source:   source.NewDir("assets"),
//	    Registry: reg,
//	})
//	h, _ := assetcache.Load[Config](ctx, cache, "game.settings")
//	v, gen := h.Read() // latest committed value, even after reloads
//
//	watcher, _ := fswatch.New(fswatch.Config{Extensions: []string{".yaml"}})
//	_ = watcher.Add("assets")
//	worker := assetcache.NewReloadWorker(cache, watcher, assetcache.WorkerOptions{})
//	_ = worker.Start()
//	defer worker.Stop()
//
// Generations are monotone per Key: once an observer has seen generation g,
// no later observation returns anything older. Reload failures never reach
// application goroutines; they surface through the Hooks side-channel and the
// previous value stays authoritative.
package assetcache
