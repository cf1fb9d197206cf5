// Package skyroute is a flight-route optimization engine: it finds the best
// itinerary between two cities over a directed multigraph of flights, where
// "best" is a weighted blend of flight time, price and number of connections,
// subject to hard limits on stops, duration and price.
//
// What's inside:
//
//	core/      — copy-on-write flight graph with immutable snapshots (View)
//	weight/    — weight vectors, edge/path scoring, great-circle A* heuristic
//	dijkstra/  — resource-constrained label-setting search (Dijkstra and A*)
//	bfs/, dfs/ — reachability and elementary itinerary enumeration
//	kb/        — symbolic fact store on SQLite (flight-route atoms)
//	source/    — static vs knowledge-store graph resolution with degradation
//	mutation/  — flight insertion with best-effort mirroring into the store
//	planner/   — query validation, method selection, totals and rounding
//	api/       — HTTP/JSON surface (chi), Prometheus metrics
//	config/, ctxlog/, dataset/ — YAML configuration, slog logging, flight data
//	builder/   — synthetic networks for tests and demos
//
// The daemon lives in cmd/skyrouted; runnable demos are under examples/.
//
// Quick ASCII example:
//
//	Toronto ──7.5h $540──▶ Frankfurt ──2.0h $150──▶ Rome
//	   │                                             ▲
//	   └──7.2h $520──▶ London ──1.1h $120──▶ Paris ──┘ 2.0h $160
//
// Fastest Toronto → Rome is via Frankfurt (9.5h, $690); with a $750 price
// floor the planner switches to the London–Paris chain (10.3h, $800).
package skyroute
