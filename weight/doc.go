// Package weight provides the composite objective minimized by the route
// search and the admissible great-circle heuristic used by its A* variant.
//
// Edge weight:
//
//	w(e, v, transfer) = v.Duration·hours(e) + v.Cost·usd(e)/100 + v.Layovers·P·[transfer]
//
// P is the layover penalty (DefaultLayoverPenalty = 1.0 hour-equivalent) and
// transfer is true for every edge beyond the first of a path, so a path of k
// edges pays P exactly k-1 times. A path's score is the sum of its edge
// weights.
//
// Heuristic:
//
//	h(c)  = haversine(c, goal) / speed        (hours; 0 if a coordinate is missing)
//	hw(c) = v.Duration · h(c)
//
// hw never exceeds the true remaining weight when v is non-negative and speed
// is at least the fastest great-circle speed of any flight in the graph.
// CalibrateSpeed computes such a speed for a given snapshot.
//
// Errors:
//
//	ErrNegativeWeight   – a Vector component is < 0.
//	ErrNonFiniteWeight  – a Vector component is NaN or ±Inf.
//	ErrBadPenalty       – NewFunc with a negative or non-finite penalty.
//	ErrBadSpeed         – NewHeuristic with a non-positive speed.
package weight
