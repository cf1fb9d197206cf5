// File: types.go
// Role: FlightEdge, Arc, Graph and the sentinel errors of the store.
// Errors:
//   - ErrValidation         umbrella class for every rejected edge.
//   - ErrEmptyCity          From or To is the empty string.
//   - ErrLoopNotAllowed     From == To.
//   - ErrNegativeDuration   DurationHours < 0.
//   - ErrNegativeCost       CostUSD < 0.
//   - ErrNegativeLayovers   Layovers < 0.
//   - ErrNonFinite          a numeric attribute is NaN or ±Inf.
// Concurrency:
//   - Writers are serialized by Graph.mu. After every fully-linked insertion
//     the writer publishes a fresh *View through an atomic pointer, so readers
//     never take a lock and never observe a half-linked edge.

package core

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Sentinel errors for graph store operations.
var (
	// ErrValidation is the class every edge validation failure belongs to.
	ErrValidation = errors.New("core: invalid flight edge")

	// ErrEmptyCity indicates that an endpoint identifier is empty.
	ErrEmptyCity = errors.New("core: city identifier is empty")

	// ErrLoopNotAllowed indicates a flight whose origin equals its destination.
	ErrLoopNotAllowed = errors.New("core: self-loop flight not allowed")

	// ErrNegativeDuration indicates a flight with a negative duration.
	ErrNegativeDuration = errors.New("core: duration must be non-negative")

	// ErrNegativeCost indicates a flight with a negative price.
	ErrNegativeCost = errors.New("core: cost must be non-negative")

	// ErrNegativeLayovers indicates a flight with a negative intrinsic stop count.
	ErrNegativeLayovers = errors.New("core: layovers must be non-negative")

	// ErrNonFinite indicates a NaN or infinite numeric attribute.
	ErrNonFinite = errors.New("core: numeric attribute must be finite")
)

// FlightEdge is one directed flight segment.
//
// Edges are immutable once stored: the graph hands out copies or pointers
// that callers must treat as read-only. Several edges may connect the same
// ordered pair of cities (different airlines, or plain duplicates).
type FlightEdge struct {
	// ID is assigned by the Graph on insertion ("e1", "e2", ...).
	ID string

	// From is the origin city.
	From string

	// To is the destination city.
	To string

	// Airline operating the segment.
	Airline string

	// DurationHours is the flying time of the segment.
	DurationHours float64

	// CostUSD is the ticket price of the segment.
	CostUSD float64

	// Layovers is the number of intrinsic stops the segment itself carries.
	// It is informational and never contributes to route weight.
	Layovers int
}

// SameFlight reports whether e and o describe the same flight by value,
// ignoring the store-assigned ID.
func (e FlightEdge) SameFlight(o FlightEdge) bool {
	return e.From == o.From &&
		e.To == o.To &&
		e.Airline == o.Airline &&
		e.DurationHours == o.DurationHours &&
		e.CostUSD == o.CostUSD &&
		e.Layovers == o.Layovers
}

// Arc is an outgoing adjacency entry: the edge plus the arena index of its
// destination city, so searches can walk the graph without string lookups.
type Arc struct {
	Edge *FlightEdge
	To   int
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the city and edge arenas.
func WithCapacity(cities, edges int) GraphOption {
	return func(g *Graph) {
		if cities > 0 {
			g.cities = make([]string, 0, cities)
			g.adjacency = make([][]Arc, 0, cities)
			g.index = make(map[string]int, cities)
		}
		if edges > 0 {
			g.edges = make([]*FlightEdge, 0, edges)
		}
	}
}

// Graph is the mutable flight store and the single source of truth for the
// static graph.
//
// cities, edges and every per-city arc list are append-only arenas: a published
// View keeps slice headers with the lengths current at publication time, so
// later appends by the writer touch memory no View reads. The index map is
// replaced (copy-on-write) whenever a city is added and never mutated in place.
type Graph struct {
	mu sync.Mutex // serializes writers

	nextEdgeID uint64         // monotonic edge ID counter
	cities     []string       // arena index → city, insertion order
	index      map[string]int // city → arena index; replaced on growth
	adjacency  [][]Arc        // arena index → outgoing arcs, insertion order
	edges      []*FlightEdge  // every edge, insertion order

	current atomic.Pointer[View] // last published snapshot
}

// NewGraph creates an empty Graph and publishes its empty snapshot.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.publish()

	return g
}

// NewGraphFromEdges builds a Graph holding every edge in order. The first
// invalid edge aborts construction.
func NewGraphFromEdges(edges []FlightEdge) (*Graph, error) {
	g := NewGraph(WithCapacity(len(edges), len(edges)))
	for _, e := range edges {
		if _, err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}

	return g, nil
}
