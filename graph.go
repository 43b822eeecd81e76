package assetcache

import (
	"sort"
	"sync"
)

// depGraph tracks which cached Keys were loaded as part of which other Keys.
// Forward edges run parent -> children (a parent depends on its children);
// the reverse index answers "who must re-derive when this Key changes".
// Edges are re-recorded on every completed load of a parent, so the graph
// always reflects the most recently committed version.
type depGraph struct {
	mu       sync.RWMutex
	children map[Key]map[Key]struct{}
	parents  map[Key]map[Key]struct{}
}

func newDepGraph() *depGraph {
	return &depGraph{
		children: make(map[Key]map[Key]struct{}),
		parents:  make(map[Key]map[Key]struct{}),
	}
}

// record replaces parent's outgoing edges with the given child set and updates
// the reverse index in the same critical section, so no reader ever sees a mix
// of old and new edges for one parent.
func (g *depGraph) record(parent Key, children []Key) {
	next := make(map[Key]struct{}, len(children))
	for _, c := range children {
		if c != parent {
			next[c] = struct{}{}
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for old := range g.children[parent] {
		if _, keep := next[old]; !keep {
			delete(g.parents[old], parent)
			if len(g.parents[old]) == 0 {
				delete(g.parents, old)
			}
		}
	}
	if len(next) == 0 {
		delete(g.children, parent)
	} else {
		g.children[parent] = next
	}
	for c := range next {
		if g.parents[c] == nil {
			g.parents[c] = make(map[Key]struct{})
		}
		g.parents[c][parent] = struct{}{}
	}
}

// dependentsOf returns the direct parents of key, sorted.
func (g *depGraph) dependentsOf(key Key) []Key {
	g.mu.RLock()
	out := make([]Key, 0, len(g.parents[key]))
	for p := range g.parents[key] {
		out = append(out, p)
	}
	g.mu.RUnlock()
	sortKeys(out)
	return out
}

// childrenOf returns the direct children of key, sorted.
func (g *depGraph) childrenOf(key Key) []Key {
	g.mu.RLock()
	out := make([]Key, 0, len(g.children[key]))
	for c := range g.children[key] {
		out = append(out, c)
	}
	g.mu.RUnlock()
	sortKeys(out)
	return out
}

// closure returns seeds plus every transitive dependent, breadth-first over
// the reverse index. Each Key appears once even when reachable along several
// paths.
func (g *depGraph) closure(seeds []Key) []Key {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := make(map[Key]struct{}, len(seeds))
	queue := make([]Key, 0, len(seeds))
	for _, s := range seeds {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			queue = append(queue, s)
		}
	}
	for i := 0; i < len(queue); i++ {
		for p := range g.parents[queue[i]] {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				queue = append(queue, p)
			}
		}
	}
	return queue
}

// order topologically sorts union so that every Key comes after all of its
// children that are also in union. Ties break on Key order, which makes the
// whole batch sequence reproducible.
func (g *depGraph) order(union []Key) []Key {
	in := make(map[Key]struct{}, len(union))
	for _, k := range union {
		in[k] = struct{}{}
	}

	g.mu.RLock()
	indeg := make(map[Key]int, len(union))
	dependents := make(map[Key][]Key, len(union))
	for _, k := range union {
		n := 0
		for c := range g.children[k] {
			if _, ok := in[c]; ok {
				n++
				dependents[c] = append(dependents[c], k)
			}
		}
		indeg[k] = n
	}
	g.mu.RUnlock()

	ready := make([]Key, 0, len(union))
	for _, k := range union {
		if indeg[k] == 0 {
			ready = append(ready, k)
		}
	}
	sortKeys(ready)

	out := make([]Key, 0, len(union))
	for len(ready) > 0 {
		k := ready[0]
		ready = ready[1:]
		out = append(out, k)
		advanced := false
		for _, p := range dependents[k] {
			indeg[p]--
			if indeg[p] == 0 {
				ready = append(ready, p)
				advanced = true
			}
		}
		if advanced {
			sortKeys(ready)
		}
	}

	// Leftovers would mean a cycle snuck past load-time detection; emit them
	// anyway so every Key in the batch is attempted.
	if len(out) < len(union) {
		rest := make([]Key, 0, len(union)-len(out))
		emitted := make(map[Key]struct{}, len(out))
		for _, k := range out {
			emitted[k] = struct{}{}
		}
		for _, k := range union {
			if _, ok := emitted[k]; !ok {
				rest = append(rest, k)
			}
		}
		sortKeys(rest)
		out = append(out, rest...)
	}
	return out
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
}
