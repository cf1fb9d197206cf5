// Package bfs answers hop-count questions on a flight graph snapshot.
//
// BFS expands the network one layer of flights at a time from a start city
// and records, for every city it reaches, the fewest flights needed and the
// flight that first got there. Parallel flights between two cities count as
// one hop; a per-flight filter can exclude individual flights (for example
// legs that alone break a duration or price cap).
//
// Two consumers:
//
//   - dijkstra uses Reachable to tell "no route exists" apart from "no
//     route satisfies the constraints" after a constrained search fails.
//   - planner uses BFS with a filter to report how many layovers a trip
//     needs at minimum when the layover cap is what made it infeasible.
//
// Determinism: within a layer, cities are expanded in discovery order and
// flights in insertion order, so results are reproducible.
//
// Complexity: O(V + E) time, O(V) memory.
package bfs
