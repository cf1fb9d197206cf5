// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only diagnostics over a View (Stats, Validate).
// Policy:
//   - No mutation here.
//   - Validate() exists to catch programming faults; it panics rather than
//     returning an error a caller could swallow.

package core

import "fmt"

// GraphStats is a compact summary of a View.
type GraphStats struct {
	CityCount    int
	EdgeCount    int
	AirlineCount int
	// IsolatedCount counts cities without outgoing flights.
	IsolatedCount int
}

// Stats summarizes the view.
//
// Complexity: O(V + E).
func (v *View) Stats() GraphStats {
	airlines := make(map[string]struct{})
	stats := GraphStats{
		CityCount: len(v.cities),
		EdgeCount: len(v.edges),
	}
	for _, e := range v.edges {
		airlines[e.Airline] = struct{}{}
	}
	for _, arcs := range v.adjacency {
		if len(arcs) == 0 {
			stats.IsolatedCount++
		}
	}
	stats.AirlineCount = len(airlines)

	return stats
}

// MustValidate checks the structural invariants of the view: every arc
// leaves the city it is stored under and points at the arena index of its
// edge's destination. A violation panics.
//
// Complexity: O(V + E).
func (v *View) MustValidate() {
	if len(v.cities) != len(v.adjacency) || len(v.cities) != len(v.index) {
		panic(fmt.Sprintf("core: arena size mismatch: cities=%d adjacency=%d index=%d",
			len(v.cities), len(v.adjacency), len(v.index)))
	}
	arcs := 0
	for i, list := range v.adjacency {
		for _, a := range list {
			if a.Edge.From != v.cities[i] {
				panic(fmt.Sprintf("core: edge %s stored under %q but leaves %q", a.Edge.ID, v.cities[i], a.Edge.From))
			}
			if a.To < 0 || a.To >= len(v.cities) || v.cities[a.To] != a.Edge.To {
				panic(fmt.Sprintf("core: dangling arc for edge %s", a.Edge.ID))
			}
			arcs++
		}
	}
	if arcs != len(v.edges) {
		panic(fmt.Sprintf("core: %d arcs for %d edges", arcs, len(v.edges)))
	}
}
