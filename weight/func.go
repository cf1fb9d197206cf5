// File: func.go
// Role: Composite edge weight (duration, cost, layover penalty).
// Determinism:
//   - Edge() is pure; PathScore() sums in path order.

package weight

import (
	"fmt"
	"math"

	"github.com/katalvlaran/skyroute/core"
)

// Func computes the scalar weight of a flight segment.
type Func struct {
	// LayoverPenalty is charged once per connection, i.e. for every edge
	// after the first one of a path, scaled by Vector.Layovers.
	LayoverPenalty float64
}

// Default returns a Func with DefaultLayoverPenalty.
func Default() Func {
	return Func{LayoverPenalty: DefaultLayoverPenalty}
}

// NewFunc returns a Func with the given penalty.
func NewFunc(penalty float64) (Func, error) {
	if penalty < 0 || math.IsNaN(penalty) || math.IsInf(penalty, 0) {
		return Func{}, fmt.Errorf("%w: %v", ErrBadPenalty, penalty)
	}

	return Func{LayoverPenalty: penalty}, nil
}

// Edge returns
//
//	v.Duration*e.DurationHours + v.Cost*(e.CostUSD/CostScale) + v.Layovers*penalty*[transfer]
//
// where transfer reports whether e is not the first edge of the path.
// The result is non-negative whenever v is valid.
func (f Func) Edge(e *core.FlightEdge, v Vector, transfer bool) float64 {
	w := v.Duration*e.DurationHours + v.Cost*(e.CostUSD/CostScale)
	if transfer {
		w += v.Layovers * f.LayoverPenalty
	}

	return w
}

// PathScore sums Edge over a path given as consecutive edges.
func (f Func) PathScore(edges []core.FlightEdge, v Vector) float64 {
	var total float64
	for i := range edges {
		total += f.Edge(&edges[i], v, i > 0)
	}

	return total
}
