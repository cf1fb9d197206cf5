// File: types.go
// Role: RouteQuery / RouteResult, search methods, options and sentinels.

package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/dijkstra"
	"github.com/katalvlaran/skyroute/source"
	"github.com/katalvlaran/skyroute/weight"
)

// ErrValidation marks a malformed query: unknown method or source, missing
// endpoints, bad weights or constraints. The specific cause is wrapped too.
var ErrValidation = errors.New("planner: invalid query")

// ErrNonFiniteTotals indicates a route whose score, duration or cost
// overflowed to infinity while summing finite legs.
var ErrNonFiniteTotals = errors.New("planner: route totals are not finite")

// LayoverShortfallError refines dijkstra.ErrConstraintsTooStrict when the
// layover cap is below the fewest layovers any itinerary needs, counting
// only flights that individually fit the duration and price caps.
type LayoverShortfallError struct {
	Required int
	Allowed  int
	Err      error
}

func (e *LayoverShortfallError) Error() string {
	return fmt.Sprintf("%v: requires at least %s, max_layovers=%d", e.Err, layovers(e.Required), e.Allowed)
}

func (e *LayoverShortfallError) Unwrap() error { return e.Err }

func layovers(n int) string {
	if n == 1 {
		return "1 layover"
	}
	return fmt.Sprintf("%d layovers", n)
}

// ErrMissingEndpoints indicates an empty From or To.
var ErrMissingEndpoints = errors.New("missing required params: from, to")

// Method selects the search variant.
type Method int

const (
	// Dijkstra is the plain label-setting search.
	Dijkstra Method = iota
	// AStar adds the great-circle duration heuristic.
	AStar
)

// String returns the wire name ("dijkstra" or "a_star").
func (m Method) String() string {
	if m == AStar {
		return "a_star"
	}
	return "dijkstra"
}

// ParseMethod accepts "dijkstra" (or empty) and "a_star" with the aliases
// "astar", "a*" and "a-star". Case and surrounding space are ignored.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dijkstra":
		return Dijkstra, nil
	case "a_star", "astar", "a*", "a-star":
		return AStar, nil
	default:
		return Dijkstra, fmt.Errorf("%w: unknown method %q", ErrValidation, name)
	}
}

// RouteQuery is one route request.
type RouteQuery struct {
	From, To    string
	Weights     weight.Vector
	Constraints dijkstra.Constraints
	Method      Method
	Source      source.Source
}

// Validate rejects queries that must not reach the search. Every failure
// wraps ErrValidation.
func (q RouteQuery) Validate() error {
	if q.From == "" || q.To == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingEndpoints)
	}
	if q.Method != Dijkstra && q.Method != AStar {
		return fmt.Errorf("%w: unknown method %d", ErrValidation, q.Method)
	}
	if q.Source != source.Graph && q.Source != source.External {
		return fmt.Errorf("%w: unknown source %d", ErrValidation, q.Source)
	}
	if err := q.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := q.Constraints.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// Totals summarize a route. Durations and costs are rounded to 2 decimals,
// the score to 3.
type Totals struct {
	DurationHours float64
	CostUSD       float64
	Layovers      int
	Score         float64
	Method        Method
}

// RouteResult is an optimal route.
type RouteResult struct {
	Path   []string
	Edges  []core.FlightEdge
	Totals Totals

	// Source is the source the route was searched on; Degraded is true when
	// External fell back to the static graph.
	Source   source.Source
	Degraded bool
	// Expanded is the number of labels the search expanded.
	Expanded int
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Resolver yields the view for a source. *source.Adapter implements it.
type Resolver interface {
	Resolve(ctx context.Context, src source.Source) source.Resolution
}

// Option configures a Planner.
type Option func(*Planner)

// WithCoordinates sets the city positions used by the A* heuristic.
func WithCoordinates(c weight.Coordinates) Option {
	return func(p *Planner) { p.coords = c }
}

// WithCruiseSpeed sets the base speed of the A* heuristic in km/h.
func WithCruiseSpeed(kmph float64) Option {
	return func(p *Planner) {
		if !(kmph > 0) || math.IsInf(kmph, 0) {
			p.fail(fmt.Errorf("%w: %v", weight.ErrBadSpeed, kmph))
			return
		}
		p.cruise = kmph
	}
}

// WithLayoverPenalty sets the per-connection penalty of the weight function.
func WithLayoverPenalty(penalty float64) Option {
	return func(p *Planner) {
		fn, err := weight.NewFunc(penalty)
		if err != nil {
			p.fail(err)
			return
		}
		p.fn = fn
	}
}

// WithMaxExpansions bounds the labels a single search may expand; 0 means
// unlimited.
func WithMaxExpansions(n int) Option {
	return func(p *Planner) {
		if n < 0 {
			p.fail(fmt.Errorf("%w: %d", dijkstra.ErrBadMaxExpansions, n))
			return
		}
		p.maxExpansions = n
	}
}

// WithLogger sets the planner logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

func (p *Planner) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
