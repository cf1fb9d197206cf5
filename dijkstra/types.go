// Package dijkstra defines the types and configuration options of the
// resource-constrained route search.
//
// Options:
//
//	– Weights:       objective vector (weight.Vector); default {1, 0, 0}.
//	– Func:          edge weight function; default weight.Default().
//	– Constraints:   hard caps (layovers, duration, price) and the price floor.
//	– Heuristic:     optional lower bound on remaining weight (A*); nil = Dijkstra.
//	– MaxExpansions: work budget in popped labels; 0 = unlimited.
//
// Errors (sentinel):
//
//	– ErrNilView            if the provided view pointer is nil.
//	– ErrEmptyCity          if from or to is empty.
//	– ErrUnknownCity        if from or to is not a city of the view (*UnknownCityError).
//	– ErrInvalidConstraint  if a constraint is negative or non-finite.
//	– ErrBadMaxExpansions   if MaxExpansions < 0.
//	– ErrNotFound           if no path satisfies the constraints; always wrapped
//	                        together with ErrNoPath or ErrConstraintsTooStrict.
//	– ErrDeadlineExceeded   if ctx ended or the expansion budget ran out.
//
// Example usage:
//
//	p, err := dijkstra.Search(ctx, view, "Paris", "Rome",
//	    dijkstra.WithWeights(weight.Vector{Duration: 1}),
//	    dijkstra.WithConstraints(dijkstra.Constraints{MaxLayovers: dijkstra.Int(1)}),
//	)
package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/weight"
)

// Sentinel errors returned by Search.
var (
	// ErrNilView indicates that a nil *core.View was passed to Search.
	ErrNilView = errors.New("dijkstra: view is nil")

	// ErrEmptyCity indicates an empty origin or destination.
	ErrEmptyCity = errors.New("dijkstra: city identifier is empty")

	// ErrUnknownCity indicates an endpoint that is not a city of the view.
	ErrUnknownCity = errors.New("dijkstra: unknown city")

	// ErrInvalidConstraint indicates a negative or non-finite constraint.
	ErrInvalidConstraint = errors.New("dijkstra: invalid constraint")

	// ErrBadMaxExpansions indicates a negative expansion budget.
	ErrBadMaxExpansions = errors.New("dijkstra: MaxExpansions must be non-negative")

	// ErrNotFound indicates that the label queue emptied without an
	// acceptable destination label. It is a normal outcome.
	ErrNotFound = errors.New("dijkstra: route not found")

	// ErrNoPath refines ErrNotFound: the destination is unreachable even
	// without constraints.
	ErrNoPath = errors.New("no path exists")

	// ErrConstraintsTooStrict refines ErrNotFound: a path exists but none
	// satisfies the constraints.
	ErrConstraintsTooStrict = errors.New("no path satisfies the constraints")

	// ErrDeadlineExceeded indicates that the search was aborted by its
	// context or its expansion budget.
	ErrDeadlineExceeded = errors.New("dijkstra: deadline exceeded")
)

// UnknownCityError names the endpoint missing from the view.
// errors.Is(err, ErrUnknownCity) holds for it.
type UnknownCityError struct {
	City string
}

func (e *UnknownCityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownCity, e.City)
}

// Is matches ErrUnknownCity.
func (e *UnknownCityError) Is(target error) bool { return target == ErrUnknownCity }

// Constraints are the hard limits of a query. A nil field is unconstrained.
//
// MaxLayovers counts connections: a direct flight has 0 layovers, so
// MaxLayovers = 0 admits direct flights only. MinPrice is a result filter,
// checked only on complete paths.
type Constraints struct {
	MaxLayovers *int
	MaxDuration *float64
	MaxPrice    *float64
	MinPrice    *float64
}

// Int returns a pointer to n, for building Constraints literals.
func Int(n int) *int { return &n }

// Float returns a pointer to x, for building Constraints literals.
func Float(x float64) *float64 { return &x }

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return c.MaxLayovers == nil && c.MaxDuration == nil && c.MaxPrice == nil && c.MinPrice == nil
}

// Validate rejects negative or non-finite limits. MinPrice above MaxPrice is
// accepted and simply admits no route.
func (c Constraints) Validate() error {
	if c.MaxLayovers != nil && *c.MaxLayovers < 0 {
		return fmt.Errorf("%w: max_layovers=%d", ErrInvalidConstraint, *c.MaxLayovers)
	}
	for _, f := range []struct {
		name string
		p    *float64
	}{
		{"max_duration", c.MaxDuration},
		{"max_price", c.MaxPrice},
		{"min_price", c.MinPrice},
	} {
		if f.p == nil {
			continue
		}
		if x := *f.p; x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidConstraint, f.name, x)
		}
	}

	return nil
}

// Options configures Search.
type Options struct {
	Weights       weight.Vector
	Func          weight.Func
	Constraints   Constraints
	Heuristic     func(city int) float64
	MaxExpansions int

	err error // first option violation, surfaced by Search
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// DefaultOptions returns the duration-only, unconstrained Dijkstra setup.
func DefaultOptions() Options {
	return Options{
		Weights: weight.DefaultVector(),
		Func:    weight.Default(),
	}
}

// WithWeights sets the objective vector. Invalid vectors are reported by
// Search.
func WithWeights(v weight.Vector) Option {
	return func(o *Options) {
		if err := v.Validate(); err != nil && o.err == nil {
			o.err = err
		}
		o.Weights = v
	}
}

// WithWeightFunc overrides the edge weight function (layover penalty).
func WithWeightFunc(f weight.Func) Option {
	return func(o *Options) {
		o.Func = f
	}
}

// WithConstraints sets the hard limits. Invalid limits are reported by Search.
func WithConstraints(c Constraints) Option {
	return func(o *Options) {
		if err := c.Validate(); err != nil && o.err == nil {
			o.err = err
		}
		o.Constraints = c
	}
}

// WithHeuristic enables A*: h(i) must not exceed the true remaining weight
// from the city at arena index i to the destination.
func WithHeuristic(h func(city int) float64) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithMaxExpansions bounds the number of expanded labels; 0 disables the
// bound.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 && o.err == nil {
			o.err = fmt.Errorf("%w: %d", ErrBadMaxExpansions, n)
		}
		o.MaxExpansions = n
	}
}

// Path is an optimal route.
type Path struct {
	Cities        []string          // origin … destination
	Edges         []core.FlightEdge // len(Cities)-1 flights, in travel order
	Weight        float64           // Σ edge weights (score)
	Layovers      int               // connections: max(0, len(Edges)-1)
	DurationHours float64
	CostUSD       float64
	Expanded      int // labels expanded by the search
}
