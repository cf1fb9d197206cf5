// File: view.go
// Role: Immutable graph snapshots (View) and non-mutating overlays.
// Determinism:
//   - Edges() and CitiesInOrder() follow insertion order; Cities() is sorted.
// Concurrency:
//   - A View is never mutated after publication; every method is safe for
//     concurrent use without locks.

package core

import (
	"fmt"
	"slices"
)

// View is a read-only snapshot of the flight graph.
//
// Every edge endpoint is a key of index, and every arc points at a valid
// arena index. A View built by Overlay has the same guarantees.
type View struct {
	cities    []string
	index     map[string]int
	adjacency [][]Arc
	edges     []*FlightEdge
}

// HasCity reports whether city is a node of the view.
func (v *View) HasCity(city string) bool {
	_, ok := v.index[city]
	return ok
}

// Index returns the arena index of city.
func (v *View) Index(city string) (int, bool) {
	idx, ok := v.index[city]
	return idx, ok
}

// CityAt returns the city stored at arena index i.
// Panics if i is out of range: an index not produced by this view is a
// programming fault.
func (v *View) CityAt(i int) string {
	if i < 0 || i >= len(v.cities) {
		panic(fmt.Sprintf("core: city index %d out of range [0,%d)", i, len(v.cities)))
	}

	return v.cities[i]
}

// CityCount returns the number of cities.
func (v *View) CityCount() int { return len(v.cities) }

// EdgeCount returns the number of edges.
func (v *View) EdgeCount() int { return len(v.edges) }

// Cities returns the cities sorted lexicographically.
func (v *View) Cities() []string {
	out := slices.Clone(v.cities)
	slices.Sort(out)

	return out
}

// CitiesInOrder returns the cities in first-appearance order.
func (v *View) CitiesInOrder() []string {
	return slices.Clone(v.cities)
}

// Edges returns copies of every edge in insertion order.
func (v *View) Edges() []FlightEdge {
	out := make([]FlightEdge, len(v.edges))
	for i, e := range v.edges {
		out[i] = *e
	}

	return out
}

// Overlay returns a new View holding every edge of base followed by each
// valid edge of extra that is not a value-duplicate (SameFlight) of an edge
// already present. Invalid extras are skipped and reported; base is not
// modified.
//
// Overlay edges receive IDs continuing after the base edges so that every
// edge of the result has a unique ID.
//
// Complexity: O(V + E + |extra|·d) where d is the out-degree of the extra
// edge's origin (duplicate check).
func Overlay(base *View, extra []FlightEdge) (*View, []error) {
	g := NewGraph(WithCapacity(base.CityCount(), base.EdgeCount()+len(extra)))

	g.mu.Lock()
	for _, e := range base.edges {
		from := g.ensureCity(e.From)
		to := g.ensureCity(e.To)
		g.edges = append(g.edges, e)
		g.adjacency[from] = append(g.adjacency[from], Arc{Edge: e, To: to})
	}
	g.nextEdgeID = uint64(len(base.edges))
	g.mu.Unlock()

	var errs []error
	for _, e := range extra {
		if err := ValidateEdge(e); err != nil {
			errs = append(errs, err)
			continue
		}
		if g.hasSameFlight(e) {
			continue
		}
		if _, err := g.AddEdge(e); err != nil {
			errs = append(errs, err)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.publish()

	return g.current.Load(), errs
}

// hasSameFlight reports whether an edge equal by value to e is stored.
func (g *Graph) hasSameFlight(e FlightEdge) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx, ok := g.index[e.From]
	if !ok {
		return false
	}
	for _, a := range g.adjacency[idx] {
		if a.Edge.SameFlight(e) {
			return true
		}
	}

	return false
}
