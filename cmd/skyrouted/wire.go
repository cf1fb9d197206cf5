package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/katalvlaran/skyroute/api"
	"github.com/katalvlaran/skyroute/config"
	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/dataset"
	"github.com/katalvlaran/skyroute/kb"
	"github.com/katalvlaran/skyroute/mutation"
	"github.com/katalvlaran/skyroute/planner"
	"github.com/katalvlaran/skyroute/source"
)

// app is the wired process.
type app struct {
	graph   *core.Graph
	store   *kb.Store // nil without knowledge.db_path
	handler http.Handler
}

// Close releases the knowledge store.
func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// build wires dataset → graph → knowledge store → adapter → mutation
// manager → planner → HTTP server.
func build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	d, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	g, err := d.Graph()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	stats := g.Snapshot().Stats()
	logger.Info("dataset loaded",
		"path", cfg.DatasetPath, "cities", stats.CityCount, "flights", stats.EdgeCount,
		"airlines", stats.AirlineCount, "coordinates", len(d.Cities))

	a := &app{graph: g}
	adapterOpts := []source.Option{
		source.WithTimeout(cfg.Knowledge.Timeout),
		source.WithLogger(logger.With("component", "source")),
	}
	mutOpts := []mutation.Option{
		mutation.WithMirrorTimeout(cfg.Knowledge.MirrorTimeout),
		mutation.WithLogger(logger.With("component", "mutation")),
	}

	if cfg.Knowledge.DBPath != "" {
		st, err := kb.Open(cfg.Knowledge.DBPath, kb.WithLogger(logger.With("component", "kb")))
		if err != nil {
			return nil, err
		}
		a.store = st
		for _, f := range cfg.Knowledge.SeedFiles {
			if _, _, err := st.Seed(ctx, f); err != nil {
				a.Close()
				return nil, fmt.Errorf("seed knowledge store: %w", err)
			}
		}
		adapterOpts = append(adapterOpts, source.WithExternal(st))
		mutOpts = append(mutOpts, mutation.WithExternal(st))
	} else {
		logger.Info("no knowledge store configured; source=metta serves the static graph")
	}

	adapter, err := source.NewAdapter(g, adapterOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	mgr, err := mutation.NewManager(g, mutOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	p, err := planner.New(adapter,
		planner.WithCoordinates(d.Cities),
		planner.WithCruiseSpeed(cfg.Search.CruiseSpeedKmph),
		planner.WithLayoverPenalty(cfg.Search.LayoverPenalty),
		planner.WithMaxExpansions(cfg.Search.MaxExpansions),
		planner.WithLogger(logger.With("component", "planner")),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	srv, err := api.NewServer(api.Config{
		Store:         g,
		Planner:       p,
		Sources:       adapter,
		Flights:       mgr,
		Logger:        logger.With("component", "api"),
		StaticDir:     cfg.StaticDir,
		SearchTimeout: cfg.Search.Timeout,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.handler = srv

	return a, nil
}
