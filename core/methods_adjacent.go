// File: methods_adjacent.go
// Role: Neighborhood queries on View (Neighbors, NeighborIDs, Arcs, AdjacencyList).
// Determinism:
//   - Outgoing edges are returned in insertion order.
//   - NeighborIDs() returns unique destinations sorted lexicographically.
// Concurrency:
//   - Read-only over an immutable View.

package core

import "slices"

// Neighbors returns copies of the outgoing edges of city in insertion order.
// Unknown cities and cities without outgoing flights yield an empty, non-nil
// slice; this is never an error.
//
// Complexity: O(d) where d is the out-degree of city.
func (v *View) Neighbors(city string) []FlightEdge {
	idx, ok := v.index[city]
	if !ok {
		return []FlightEdge{}
	}
	arcs := v.adjacency[idx]
	out := make([]FlightEdge, len(arcs))
	for i, a := range arcs {
		out[i] = *a.Edge
	}

	return out
}

// NeighborIDs returns the distinct destinations reachable from city in one
// flight, sorted lexicographically.
func (v *View) NeighborIDs(city string) []string {
	idx, ok := v.index[city]
	if !ok {
		return []string{}
	}
	seen := make(map[int]struct{}, len(v.adjacency[idx]))
	out := make([]string, 0, len(v.adjacency[idx]))
	for _, a := range v.adjacency[idx] {
		if _, dup := seen[a.To]; dup {
			continue
		}
		seen[a.To] = struct{}{}
		out = append(out, v.CityAt(a.To))
	}
	slices.Sort(out)

	return out
}

// Arcs returns the outgoing arcs of the city at arena index i. The returned
// slice and the edges it points to are shared with the view and must not be
// modified.
//
// Complexity: O(1).
func (v *View) Arcs(i int) []Arc {
	if i < 0 || i >= len(v.adjacency) {
		return nil
	}

	return v.adjacency[i]
}

// AdjacencyList returns, for every city, the IDs of its outgoing edges in
// insertion order. Cities without outgoing flights map to an empty slice.
func (v *View) AdjacencyList() map[string][]string {
	out := make(map[string][]string, len(v.cities))
	for i, city := range v.cities {
		ids := make([]string, len(v.adjacency[i]))
		for j, a := range v.adjacency[i] {
			ids[j] = a.Edge.ID
		}
		out[city] = ids
	}

	return out
}
