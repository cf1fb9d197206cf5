// Package dfs enumerates elementary itineraries on a flight graph snapshot
// by depth-first search.
//
// What:
//
//   - SimplePaths(view, from, to, visit, opts...) walks every path from
//     "from" to "to" that repeats no city, handing each one to visit as
//     the ordered list of flights taken. Parallel flights between the same
//     pair of cities yield distinct paths.
//
// Why:
//
//   - Exhaustive enumeration is the ground truth the label-setting search
//     in package dijkstra is checked against on small networks.
//   - Hop limits and edge filters make it usable for "all direct or
//     one-stop options" style listings.
//
// Options:
//
//   - WithContext(ctx)        cancellation; checked once per expanded city.
//   - WithMaxHops(n)          paths longer than n flights are not explored.
//   - WithFilterEdge(fn)      flights for which fn returns false are skipped.
//
// Complexity:
//
//   - Time:   exponential in the worst case (every simple path is visited).
//   - Memory: O(V) for the recursion stack and on-path markers.
//
// Errors:
//
//   - ErrViewNil              view is nil.
//   - ErrStartCityNotFound    "from" is not a city of view.
//   - ErrOptionViolation      a negative hop limit was supplied.
//   - context errors          the context ended mid-walk.
//   - any error from visit, except ErrStop which ends the walk cleanly.
package dfs
