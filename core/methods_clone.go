// File: methods_clone.go
// Role: Snapshot publication (copy-on-write of adjacency headers) and
//       snapshot retrieval.
// Determinism:
//   - A View reflects exactly the edges inserted before its publication.
// Concurrency:
//   - publish() runs under g.mu; Snapshot() is lock-free.

package core

// publish freezes the current arenas into a new View and makes it the
// snapshot returned by Snapshot. Callers hold g.mu (or own g exclusively
// during construction).
//
// Only slice headers are copied: the outer adjacency slice is cloned so the
// writer can keep re-slicing per-city lists, while the backing arrays of the
// city, edge and arc arenas are shared. Full slice expressions cap every
// shared slice so a View can never append into writer-owned memory.
//
// Complexity: O(V).
func (g *Graph) publish() {
	adjacency := make([][]Arc, len(g.adjacency))
	for i, arcs := range g.adjacency {
		adjacency[i] = arcs[:len(arcs):len(arcs)]
	}

	nc, ne := len(g.cities), len(g.edges)
	g.current.Store(&View{
		cities:    g.cities[:nc:nc],
		index:     g.index,
		adjacency: adjacency,
		edges:     g.edges[:ne:ne],
	})
}

// Snapshot returns the latest published View. The View is immutable and safe
// to iterate while later insertions proceed.
//
// Complexity: O(1). Concurrency: lock-free.
func (g *Graph) Snapshot() *View {
	return g.current.Load()
}
