// File: adapter.go
// Role: SourceAdapter. Resolves a Source into a read-only *core.View,
//       overlaying external facts on the static snapshot and degrading to
//       the static snapshot whenever the external store misbehaves.
// Concurrency:
//   - Safe for concurrent use. Concurrent external fetches share one call.
//   - A fetch runs detached from any single caller's cancellation and is
//     bounded by the adapter timeout; callers stop waiting on their own ctx.

package source

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/kb"
)

var (
	// resolveTotal counts resolutions by requested source and outcome.
	// Labels: source="python"|"metta", outcome="ok"|"degraded"
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyroute_source_resolve_total",
		Help: "Graph resolutions by source and outcome",
	}, []string{"source", "outcome"})

	degradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyroute_adapter_degraded_total",
		Help: "External resolutions that fell back to the static graph",
	})

	skippedFacts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyroute_adapter_skipped_facts_total",
		Help: "External facts skipped as malformed or invalid",
	})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyroute_adapter_fetch_duration_seconds",
		Help:    "External fact fetch duration",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})
)

var tracer = otel.Tracer("skyroute.source")

// Adapter resolves graph sources.
type Adapter struct {
	store    Snapshotter
	external ExternalSource
	timeout  time.Duration
	logger   *slog.Logger

	fetches singleflight.Group
	err     error
}

// NewAdapter returns an adapter over store.
func NewAdapter(store Snapshotter, opts ...Option) (*Adapter, error) {
	if store == nil {
		return nil, fmt.Errorf("source: nil store")
	}
	a := &Adapter{
		store:   store,
		timeout: DefaultTimeout,
		logger:  discardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.err != nil {
		return nil, a.err
	}
	return a, nil
}

// External returns the configured external store, or nil.
func (a *Adapter) External() ExternalSource { return a.external }

// Resolve returns the view a query over src should search. It never fails:
// problems with the external store are reported in Resolution.Degraded and
// the static snapshot is returned instead.
func (a *Adapter) Resolve(ctx context.Context, src Source) Resolution {
	static := a.store.Snapshot()
	if src != External {
		resolveTotal.WithLabelValues(src.String(), "ok").Inc()
		return Resolution{View: static, Source: src}
	}

	ctx, span := tracer.Start(ctx, "source.Adapter.Resolve",
		trace.WithAttributes(attribute.String("source", src.String())),
	)
	defer span.End()

	facts, err := a.fetch(ctx)
	if err != nil {
		degradedTotal.Inc()
		resolveTotal.WithLabelValues(src.String(), "degraded").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "degraded")
		a.logger.Warn("external source degraded, using static graph", "err", err)
		return Resolution{View: static, Source: src, Degraded: err}
	}

	edges := make([]core.FlightEdge, 0, len(facts))
	skipped := 0
	for _, f := range facts {
		e, err := TranslateFact(f)
		if err != nil {
			skipped++
			a.logger.Debug("skipping external fact", "err", err)
			continue
		}
		edges = append(edges, e)
	}

	view, errs := core.Overlay(static, edges)
	for _, err := range errs {
		a.logger.Debug("skipping invalid external flight", "err", err)
	}
	skipped += len(errs)
	skippedFacts.Add(float64(skipped))

	span.SetAttributes(
		attribute.Int("facts", len(facts)),
		attribute.Int("skipped", skipped),
		attribute.Int("edges", view.EdgeCount()),
	)
	resolveTotal.WithLabelValues(src.String(), "ok").Inc()

	return Resolution{View: view, Source: src, Skipped: skipped}
}

// fetch loads every flight fact. Concurrent callers share one bounded call.
func (a *Adapter) fetch(ctx context.Context) ([]kb.Atom, error) {
	if a.external == nil {
		return nil, ErrUnavailable
	}

	ch := a.fetches.DoChan("flights", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		start := time.Now()
		defer func() { fetchDuration.Observe(time.Since(start).Seconds()) }()

		if err := a.external.Probe(fctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		facts, err := a.external.FlightFacts(fctx)
		if err != nil {
			return nil, fmt.Errorf("query flight facts: %w", err)
		}
		return facts, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch flight facts: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]kb.Atom), nil
	}
}

// Available reports whether the external store is configured and answers its
// probe within the adapter timeout.
func (a *Adapter) Available(ctx context.Context) bool {
	if a.external == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.external.Probe(ctx) == nil
}

// ExternalCities returns the sorted cities named by external facts only.
// Malformed facts are ignored.
func (a *Adapter) ExternalCities(ctx context.Context) ([]string, error) {
	facts, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, f := range facts {
		e, err := TranslateFact(f)
		if err != nil {
			continue
		}
		seen[e.From] = struct{}{}
		seen[e.To] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Direct returns the external direct-flight candidates from → to, each
// rendered as (Airline duration cost layovers). It returns ErrUnavailable
// when no external store is configured or it fails its probe.
func (a *Adapter) Direct(ctx context.Context, from, to string) ([]string, error) {
	if !a.Available(ctx) {
		return nil, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	facts, err := a.external.DirectFacts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("query direct facts: %w", err)
	}
	out := make([]string, 0, len(facts))
	for _, f := range facts {
		c, err := candidate(f)
		if err != nil {
			a.logger.Debug("skipping external fact", "err", err)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
