// File: types.go
// Role: Weight vector, sentinel errors and package constants.
// Determinism:
//   - Pure value types; no hidden state.

package weight

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for weight configuration.
var (
	// ErrNegativeWeight indicates a negative weight vector component. Negative
	// weights break both search optimality and heuristic admissibility.
	ErrNegativeWeight = errors.New("weight: weights must be non-negative")

	// ErrNonFiniteWeight indicates a NaN or infinite weight vector component.
	ErrNonFiniteWeight = errors.New("weight: weights must be finite")

	// ErrBadPenalty indicates a negative or non-finite layover penalty.
	ErrBadPenalty = errors.New("weight: layover penalty must be finite and non-negative")

	// ErrBadSpeed indicates a cruise speed that is not strictly positive.
	ErrBadSpeed = errors.New("weight: cruise speed must be positive")
)

const (
	// DefaultLayoverPenalty is the weight charged per connection, in
	// duration-equivalent hours, before scaling by Vector.Layovers.
	DefaultLayoverPenalty = 1.0

	// CostScale converts USD into the weight unit: one weight unit per 100 USD.
	CostScale = 100.0

	// EarthRadiusKm is the mean Earth radius used by Haversine.
	EarthRadiusKm = 6371.0088

	// DefaultCruiseSpeedKmph is the base speed of the duration heuristic.
	// It is raised by CalibrateSpeed whenever a flight in the searched graph
	// is faster, so the estimate never exceeds any real flight time.
	DefaultCruiseSpeedKmph = 900.0
)

// Vector holds the caller-supplied weights of the composite objective.
type Vector struct {
	Duration float64 // per flight hour
	Cost     float64 // per 100 USD
	Layovers float64 // multiplier of the layover penalty per connection
}

// DefaultVector returns the duration-only objective {1, 0, 0}.
func DefaultVector() Vector {
	return Vector{Duration: 1}
}

// Validate rejects negative and non-finite components.
func (v Vector) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"w_duration", v.Duration},
		{"w_cost", v.Cost},
		{"w_layovers", v.Layovers},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFiniteWeight, c.name, c.value)
		}
		if c.value < 0 {
			return fmt.Errorf("%w: %s=%v", ErrNegativeWeight, c.name, c.value)
		}
	}

	return nil
}
