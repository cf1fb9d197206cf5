// Package builder generates deterministic synthetic flight networks for
// tests, benchmarks and demos.
//
// One orchestrator, Build(opts, cons...), resolves functional options into a
// builder configuration and runs constructors in order, concatenating the
// flights they emit. BuildGraph does the same and loads the result into a
// fresh *core.Graph.
//
// Constructors:
//
//   - RandomNetwork(n, p)   each ordered city pair gets flights with probability p.
//   - Hub(spokes)           city 0 connected both ways to every other city.
//   - Chain(n)              0 → 1 → … → n-1.
//
// Options:
//
//   - WithSeed(seed) / WithRand(r)  randomness source (required for 0 < p < 1).
//   - WithIDScheme(fn)              city naming; default "C0", "C1", ….
//   - WithMaxParallel(k)            up to k airlines per connected pair.
//   - WithFlightFn(fn)              samples duration and price per flight.
//
// Determinism: the same options, seed and constructor order yield the same
// flights in the same order.
package builder
