// File: planner.go
// Role: Query orchestration: source resolution, heuristic setup, search,
//       result shaping.
// Concurrency:
//   - Plan is safe for concurrent use. Each call searches its own immutable
//     view; the only shared state is the per-source calibrated-speed cache,
//     whose lock is never held across a graph scan.

package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/skyroute/bfs"
	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/dijkstra"
	"github.com/katalvlaran/skyroute/source"
	"github.com/katalvlaran/skyroute/weight"
)

var (
	// routeQueries counts queries by method and outcome.
	// Labels: outcome="found"|"not_found"|"invalid"|"unknown_city"|"deadline"|"overflow"|"error"
	routeQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyroute_route_queries_total",
		Help: "Route queries by method and outcome",
	}, []string{"method", "outcome"})

	routeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyroute_route_duration_seconds",
		Help:    "Route query duration including source resolution",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method"})

	labelExpansions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyroute_route_label_expansions",
		Help:    "Labels expanded per successful search",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
	}, []string{"method"})
)

var tracer = otel.Tracer("skyroute.planner")

// Planner answers route queries.
type Planner struct {
	resolver      Resolver
	coords        weight.Coordinates
	cruise        float64
	fn            weight.Func
	maxExpansions int
	logger        *slog.Logger
	err           error

	mu     sync.Mutex // guards speeds
	speeds map[source.Source]speedSlot
}

// speedSlot is the calibrated cruise speed of the last view seen for a source.
type speedSlot struct {
	view  *core.View
	speed float64
}

// New returns a Planner resolving graphs through r.
func New(r Resolver, opts ...Option) (*Planner, error) {
	if r == nil {
		return nil, errors.New("planner: nil resolver")
	}
	p := &Planner{
		resolver: r,
		cruise:   weight.DefaultCruiseSpeedKmph,
		fn:       weight.Default(),
		logger:   discardLogger(),
		speeds:   make(map[source.Source]speedSlot, 2),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

// Plan validates q, resolves its source and returns the optimal route.
//
// Errors:
//   - ErrValidation (wrapping the cause) for malformed queries.
//   - dijkstra.ErrUnknownCity when an endpoint is not in the resolved graph.
//   - dijkstra.ErrNotFound with ErrNoPath or ErrConstraintsTooStrict, the
//     latter refined to *LayoverShortfallError when the layover cap is the
//     reason.
//   - dijkstra.ErrDeadlineExceeded when ctx ends or the budget runs out.
//   - ErrNonFiniteTotals when the optimal route's totals overflow.
func (p *Planner) Plan(ctx context.Context, q RouteQuery) (*RouteResult, error) {
	method := q.Method.String()
	if err := q.Validate(); err != nil {
		routeQueries.WithLabelValues(method, "invalid").Inc()
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "planner.Planner.Plan",
		trace.WithAttributes(
			attribute.String("from", q.From),
			attribute.String("to", q.To),
			attribute.String("method", method),
			attribute.String("source", q.Source.String()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() { routeDuration.WithLabelValues(method).Observe(time.Since(start).Seconds()) }()

	res := p.resolver.Resolve(ctx, q.Source)

	opts := []dijkstra.Option{
		dijkstra.WithWeights(q.Weights),
		dijkstra.WithWeightFunc(p.fn),
		dijkstra.WithConstraints(q.Constraints),
		dijkstra.WithMaxExpansions(p.maxExpansions),
	}
	if q.Method == AStar {
		if h, ok := p.heuristic(res.View, q); ok {
			opts = append(opts, dijkstra.WithHeuristic(h))
		}
	}

	path, err := dijkstra.Search(ctx, res.View, q.From, q.To, opts...)
	if errors.Is(err, dijkstra.ErrConstraintsTooStrict) && q.Constraints.MaxLayovers != nil {
		err = p.explainLayovers(ctx, res.View, q, err)
	}
	if err != nil {
		outcome := classify(err)
		routeQueries.WithLabelValues(method, outcome).Inc()
		if outcome != "not_found" {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		p.logger.Debug("route search failed",
			"from", q.From, "to", q.To, "method", method, "source", q.Source.String(), "err", err)
		return nil, err
	}

	if !finite(path.Weight) || !finite(path.DurationHours) || !finite(path.CostUSD) {
		routeQueries.WithLabelValues(method, "overflow").Inc()
		span.SetStatus(codes.Error, "overflow")
		return nil, fmt.Errorf("%w: score=%v duration=%v cost=%v",
			ErrNonFiniteTotals, path.Weight, path.DurationHours, path.CostUSD)
	}

	routeQueries.WithLabelValues(method, "found").Inc()
	labelExpansions.WithLabelValues(method).Observe(float64(path.Expanded))
	span.SetAttributes(
		attribute.Int("hops", len(path.Edges)),
		attribute.Int("expanded", path.Expanded),
		attribute.Float64("score", path.Weight),
	)

	return &RouteResult{
		Path:  path.Cities,
		Edges: path.Edges,
		Totals: Totals{
			DurationHours: round(path.DurationHours, 2),
			CostUSD:       round(path.CostUSD, 2),
			Layovers:      path.Layovers,
			Score:         round(path.Weight, 3),
			Method:        q.Method,
		},
		Source:   q.Source,
		Degraded: res.Degraded != nil,
		Expanded: path.Expanded,
	}, nil
}

// heuristic builds the A* lower bound for q over view. It reports false when
// the view cannot support an admissible estimate (missing coordinates).
func (p *Planner) heuristic(view *core.View, q RouteQuery) (func(int) float64, bool) {
	if len(p.coords) == 0 || q.Weights.Duration == 0 {
		return nil, false
	}
	speed := p.calibratedSpeed(q.Source, view)
	if math.IsInf(speed, 1) {
		return nil, false
	}
	h, err := weight.NewHeuristic(p.coords, q.To, speed)
	if err != nil {
		return nil, false
	}
	return h.ForView(view, q.Weights), true
}

// calibratedSpeed memoizes weight.CalibrateSpeed per source, keyed by the
// view last seen for it. Static snapshots are shared until the next
// mutation; external overlays are rebuilt per query and so rescan. The scan
// runs outside p.mu.
func (p *Planner) calibratedSpeed(src source.Source, view *core.View) float64 {
	p.mu.Lock()
	slot, ok := p.speeds[src]
	p.mu.Unlock()
	if ok && slot.view == view {
		return slot.speed
	}

	speed := weight.CalibrateSpeed(view, p.coords, p.cruise)
	p.mu.Lock()
	p.speeds[src] = speedSlot{view: view, speed: speed}
	p.mu.Unlock()
	return speed
}

// legEps matches the search's tolerance on duration and price caps.
const legEps = 1e-9

// explainLayovers checks whether the layover cap alone rules the trip out:
// a fewest-hop walk over flights that fit the per-leg caps needs more
// connections than q allows. Otherwise searchErr is returned unchanged.
func (p *Planner) explainLayovers(ctx context.Context, view *core.View, q RouteQuery, searchErr error) error {
	c := q.Constraints
	fits := func(e core.FlightEdge) bool {
		return (c.MaxDuration == nil || e.DurationHours <= *c.MaxDuration+legEps) &&
			(c.MaxPrice == nil || e.CostUSD <= *c.MaxPrice+legEps)
	}
	walk, err := bfs.BFS(view, q.From,
		bfs.WithContext(ctx),
		bfs.WithFilterEdge(fits),
		bfs.WithOnVisit(func(city string, _ int) error {
			if city == q.To {
				return bfs.ErrStop
			}
			return nil
		}),
	)
	if err != nil {
		return searchErr
	}
	hops, ok := walk.Hops[q.To]
	if !ok || hops-1 <= *c.MaxLayovers {
		return searchErr
	}
	if fewest, err := walk.PathTo(q.To); err == nil {
		p.logger.Debug("layover cap below minimum",
			"from", q.From, "to", q.To, "required", hops-1, "allowed", *c.MaxLayovers, "fewest_hops", fewest)
	}
	return &LayoverShortfallError{Required: hops - 1, Allowed: *c.MaxLayovers, Err: searchErr}
}

func finite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func classify(err error) string {
	switch {
	case errors.Is(err, dijkstra.ErrNotFound):
		return "not_found"
	case errors.Is(err, dijkstra.ErrUnknownCity):
		return "unknown_city"
	case errors.Is(err, dijkstra.ErrDeadlineExceeded):
		return "deadline"
	default:
		return "error"
	}
}

// NotFoundMessage renders a not-found error for clients, naming the source.
func NotFoundMessage(q RouteQuery, err error) string {
	var short *LayoverShortfallError
	if errors.As(err, &short) {
		return fmt.Sprintf("No route from %s to %s satisfies the constraints: requires at least %s, max_layovers=%d (source=%s)",
			q.From, q.To, layovers(short.Required), short.Allowed, q.Source)
	}
	if errors.Is(err, dijkstra.ErrConstraintsTooStrict) {
		return fmt.Sprintf("No route from %s to %s satisfies the constraints (source=%s)", q.From, q.To, q.Source)
	}
	return fmt.Sprintf("No route from %s to %s (source=%s)", q.From, q.To, q.Source)
}
