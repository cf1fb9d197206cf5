// SPDX-License-Identifier: MIT

// Package mutation serializes structural updates to the flight graph.
//
// Manager.AddFlight is the only writer path: it validates the flight, inserts
// it into the static store and, when an external knowledge store is
// configured and reachable, mirrors the same fact there. Mirroring is best
// effort; its failure is reported in Result and logged but never rolls back
// the insertion. Identical flights added twice become two distinct edges.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/source"
)

// DefaultMirrorTimeout bounds one mirroring attempt.
const DefaultMirrorTimeout = time.Second

// ErrBadMirrorTimeout indicates a non-positive mirror timeout option.
var ErrBadMirrorTimeout = errors.New("mutation: mirror timeout must be positive")

var (
	// flightsAdded counts insertions by mirroring outcome.
	// Labels: mirror="mirrored"|"failed"|"skipped"
	flightsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyroute_flights_added_total",
		Help: "Flights inserted into the static graph by mirroring outcome",
	}, []string{"mirror"})

	flightsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyroute_flights_rejected_total",
		Help: "Flights rejected by validation",
	})
)

// Store is the writable static graph. *core.Graph implements it.
type Store interface {
	AddEdge(e core.FlightEdge) (core.FlightEdge, error)
}

// Result describes one AddFlight call.
type Result struct {
	// Receipt identifies the insertion; it is logged and returned to
	// the client so the two can be correlated.
	Receipt string
	// Edge is the stored edge, with its assigned ID.
	Edge core.FlightEdge
	// Mirrored is true when the fact was also asserted externally.
	Mirrored bool
	// MirrorErr is the mirroring failure, if one was attempted and failed.
	MirrorErr error
}

// Manager is the single writer of the flight graph.
type Manager struct {
	mu            sync.Mutex
	store         Store
	external      source.ExternalSource
	mirrorTimeout time.Duration
	logger        *slog.Logger
	err           error
}

// Option configures a Manager.
type Option func(*Manager)

// WithExternal mirrors inserted flights into ext.
func WithExternal(ext source.ExternalSource) Option {
	return func(m *Manager) { m.external = ext }
}

// WithMirrorTimeout bounds each mirroring attempt.
func WithMirrorTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d <= 0 {
			m.err = fmt.Errorf("%w: %v", ErrBadMirrorTimeout, d)
			return
		}
		m.mirrorTimeout = d
	}
}

// WithLogger sets the manager logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a Manager writing to store.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, errors.New("mutation: nil store")
	}
	m := &Manager{
		store:         store,
		mirrorTimeout: DefaultMirrorTimeout,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m, nil
}

// AddFlight validates e and inserts it. Validation failures wrap
// core.ErrValidation and leave the graph unchanged. Any ID on e is ignored.
func (m *Manager) AddFlight(ctx context.Context, e core.FlightEdge) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = ""
	stored, err := m.store.AddEdge(e)
	if err != nil {
		flightsRejected.Inc()
		return Result{}, err
	}

	res := Result{Receipt: uuid.New().String(), Edge: stored}
	log := m.logger.With("receipt", res.Receipt, "edge", stored.ID)

	switch {
	case m.external == nil:
		flightsAdded.WithLabelValues("skipped").Inc()
	default:
		res.MirrorErr = m.mirror(ctx, stored)
		if res.MirrorErr != nil {
			flightsAdded.WithLabelValues("failed").Inc()
			log.Warn("flight not mirrored to external store", "err", res.MirrorErr)
		} else {
			res.Mirrored = true
			flightsAdded.WithLabelValues("mirrored").Inc()
		}
	}

	log.Info("flight added",
		"from", stored.From, "to", stored.To, "airline", stored.Airline,
		"mirrored", res.Mirrored)

	return res, nil
}

func (m *Manager) mirror(ctx context.Context, e core.FlightEdge) error {
	ctx, cancel := context.WithTimeout(ctx, m.mirrorTimeout)
	defer cancel()

	if err := m.external.Probe(ctx); err != nil {
		return fmt.Errorf("%w: %w", source.ErrUnavailable, err)
	}
	if err := m.external.Assert(ctx, source.EncodeFact(e)); err != nil {
		return fmt.Errorf("assert fact: %w", err)
	}
	return nil
}
