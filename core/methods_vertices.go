// File: methods_vertices.go
// Role: City arena management (ensureCity) and city queries on Graph.
// Determinism:
//   - Arena indices follow first-appearance order and never change.
// Concurrency:
//   - ensureCity runs under g.mu; read queries go through the published View.

package core

import "maps"

// ensureCity returns the arena index of city, appending it when absent.
// Callers hold g.mu.
//
// The index map is copied before insertion because published Views hold a
// reference to the previous map and read it without locks.
func (g *Graph) ensureCity(city string) int {
	if idx, ok := g.index[city]; ok {
		return idx
	}

	idx := len(g.cities)
	next := maps.Clone(g.index)
	if next == nil {
		next = make(map[string]int, 1)
	}
	next[city] = idx

	g.index = next
	g.cities = append(g.cities, city)
	g.adjacency = append(g.adjacency, nil)

	return idx
}

// HasCity reports whether city appears as an endpoint of any stored edge.
func (g *Graph) HasCity(city string) bool {
	return g.Snapshot().HasCity(city)
}

// Cities returns every known city sorted lexicographically.
func (g *Graph) Cities() []string {
	return g.Snapshot().Cities()
}

// CityCount returns the number of known cities.
func (g *Graph) CityCount() int {
	return g.Snapshot().CityCount()
}
