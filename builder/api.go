// File: api.go
// Role: Build/BuildGraph orchestrators and the constructors.
// Determinism: constructors draw from cfg.rng in a fixed pair order.

package builder

import (
	"fmt"

	"github.com/katalvlaran/skyroute/core"
)

// Constructor emits flights using the resolved configuration.
type Constructor func(cfg builderConfig) ([]core.FlightEdge, error)

const (
	methodRandomNetwork = "RandomNetwork"
	methodHub           = "Hub"
	methodChain         = "Chain"
)

// Build resolves opts and runs each constructor in order, returning the
// concatenated flights. Every flight satisfies core.ValidateEdge.
func Build(opts []Option, cons ...Constructor) ([]core.FlightEdge, error) {
	cfg := newBuilderConfig(opts...)
	if cfg.err != nil {
		return nil, fmt.Errorf("Build: %w", cfg.err)
	}

	var out []core.FlightEdge
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		edges, err := fn(cfg)
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		out = append(out, edges...)
	}

	return out, nil
}

// BuildGraph is Build followed by loading the flights into a new graph.
func BuildGraph(opts []Option, cons ...Constructor) (*core.Graph, error) {
	edges, err := Build(opts, cons...)
	if err != nil {
		return nil, err
	}
	g, err := core.NewGraphFromEdges(edges)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w: %w", ErrConstructFailed, err)
	}

	return g, nil
}

// RandomNetwork connects each ordered pair of distinct cities among n with
// probability p.
func RandomNetwork(n int, p float64) Constructor {
	return func(cfg builderConfig) ([]core.FlightEdge, error) {
		if n < 2 {
			return nil, builderErrorf(methodRandomNetwork, "n=%d < 2: %w", n, ErrTooFewCities)
		}
		if p < 0 || p > 1 {
			return nil, builderErrorf(methodRandomNetwork, "p=%.6f: %w", p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return nil, builderErrorf(methodRandomNetwork, "%w", ErrNeedRandSource)
		}

		var out []core.FlightEdge
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if cfg.rng != nil && cfg.rng.Float64() >= p {
					continue
				}
				if cfg.rng == nil && p == 0 {
					continue
				}
				out = cfg.connect(out, cfg.idFn(i), cfg.idFn(j))
			}
		}

		return out, nil
	}
}

// Hub connects city 0 to each of the spokes other cities in both directions.
func Hub(spokes int) Constructor {
	return func(cfg builderConfig) ([]core.FlightEdge, error) {
		if spokes < 1 {
			return nil, builderErrorf(methodHub, "spokes=%d < 1: %w", spokes, ErrTooFewCities)
		}
		var out []core.FlightEdge
		hub := cfg.idFn(0)
		for i := 1; i <= spokes; i++ {
			out = cfg.connect(out, hub, cfg.idFn(i))
			out = cfg.connect(out, cfg.idFn(i), hub)
		}

		return out, nil
	}
}

// Chain links n cities in a one-way line.
func Chain(n int) Constructor {
	return func(cfg builderConfig) ([]core.FlightEdge, error) {
		if n < 2 {
			return nil, builderErrorf(methodChain, "n=%d < 2: %w", n, ErrTooFewCities)
		}
		var out []core.FlightEdge
		for i := 0; i+1 < n; i++ {
			out = cfg.connect(out, cfg.idFn(i), cfg.idFn(i+1))
		}

		return out, nil
	}
}

// connect appends the parallel flights from → to.
func (cfg builderConfig) connect(out []core.FlightEdge, from, to string) []core.FlightEdge {
	parallel := cfg.maxParallel
	if cfg.rng != nil {
		parallel = 1 + cfg.rng.Intn(cfg.maxParallel)
	}
	for k := 0; k < parallel; k++ {
		d, c := cfg.flightFn(cfg.rng, from, to, k)
		out = append(out, core.FlightEdge{
			From:          from,
			To:            to,
			Airline:       airlineName(k),
			DurationHours: d,
			CostUSD:       c,
		})
	}

	return out
}
