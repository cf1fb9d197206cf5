// Package core provides the in-memory flight graph store used by the route
// optimization engine.
//
// The graph G = (V, E) is a directed multigraph:
//
//   - V is the set of cities, created implicitly the first time a city appears
//     as an edge endpoint.
//   - E is the set of FlightEdge values. Parallel edges between the same
//     ordered pair are allowed (different airlines or plain duplicates);
//     self-loops are rejected.
//   - Every city keeps its outgoing edges in insertion order, which the search
//     relies on for deterministic tie-breaks.
//
// Storage model:
//
//	cities    []string          arena index → city (first-appearance order)
//	index     map[string]int    city → arena index (copy-on-write)
//	adjacency [][]Arc           arena index → outgoing arcs
//	edges     []*FlightEdge     all edges (insertion order)
//
// The graph only grows. A single writer mutex serializes AddEdge; after each
// insertion the writer publishes a View through an atomic pointer. A View
// holds capped slice headers into the append-only arenas, so taking a
// snapshot is a pointer load and iterating it never races with later writes.
//
// Core Methods:
//
//	// Store
//	NewGraph(opts ...GraphOption) *Graph
//	NewGraphFromEdges(edges []FlightEdge) (*Graph, error)
//	(*Graph).AddEdge(e FlightEdge) (FlightEdge, error)   // O(1)+O(V) publish
//	(*Graph).Snapshot() *View                              // O(1), lock-free
//
//	// Snapshot queries
//	(*View).Neighbors(city string) []FlightEdge          // insertion order, never errors
//	(*View).Arcs(i int) []Arc                             // index-based, for searches
//	(*View).Cities() []string                             // sorted
//	(*View).Edges() []FlightEdge                          // insertion order
//	Overlay(base *View, extra []FlightEdge) (*View, []error)
//
// Errors:
//
//	ErrValidation wraps every rejected edge together with one of
//	ErrEmptyCity, ErrLoopNotAllowed, ErrNegativeDuration, ErrNegativeCost,
//	ErrNegativeLayovers or ErrNonFinite.
//
// Structural invariant violations (an arc pointing outside the arena) are
// programming faults and panic.
package core
