// Package dijkstra finds the optimal itinerary between two cities of a flight
// graph snapshot under hard traveler constraints.
//
// Overview:
//
//   - Search minimizes the composite weight of package weight (duration,
//     price, connections) over elementary paths of a *core.View.
//   - Constraints cap layovers (connections), total duration and total price,
//     and set an optional price floor.
//   - WithHeuristic turns the search into A*; with an admissible estimate the
//     optimal score is identical to the plain search.
//
// Labels and dominance:
//
//	label = (city, weight, layovers, duration, cost, path)
//
//	A label a covers b at the same city when a.weight ≤ b.weight,
//	a.layovers ≤ b.layovers, a.duration ≤ b.duration and a's price keeps
//	every completion of b within the price constraints:
//
//	  no floor           a.cost ≤ b.cost
//	  floor and ceiling  a.cost == b.cost, or a.cost ≥ floor and a.cost ≤ b.cost
//	  floor only         a.cost ≥ b.cost, or a.cost ≥ floor
//
//	With a floor, a must also have visited a subset of b's cities, since a
//	detour may become necessary to reach the floor.
//	Covered labels are discarded; mutually covering labels keep the one that
//	ranks first in queue order.
//
// Queue order:
//
//	weight + h(city), then fewer layovers, then lower cost, then the
//	lexicographically smaller sequence of city names.
//
// Pruning on extension:
//
//	layovers after the hop > MaxLayovers, duration > MaxDuration,
//	cost > MaxPrice. MinPrice is checked when a destination label is popped;
//	a failing label is dropped and the search continues with the next one.
//
// Cancellation:
//
//	The context is checked every 64 pops; MaxExpansions bounds the number of
//	expanded labels. Both surface ErrDeadlineExceeded.
//
// Not found:
//
//	An exhausted queue yields ErrNotFound wrapped together with ErrNoPath when
//	the destination is unreachable even without constraints (bfs.Reachable),
//	or with ErrConstraintsTooStrict otherwise.
//
// API reference:
//
//	func Search(ctx context.Context, view *core.View, from, to string, opts ...Option) (*Path, error)
package dijkstra
