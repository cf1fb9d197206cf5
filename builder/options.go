// File: options.go
// Role: functional options and the resolved builder configuration.

package builder

import (
	"fmt"
	"math/rand"
)

// Option configures a Build call.
type Option func(*builderConfig)

// FlightFn samples the attributes of the k-th parallel flight between two
// cities. rng is nil when no randomness source was configured.
type FlightFn func(rng *rand.Rand, from, to string, k int) (durationHours, costUSD float64)

type builderConfig struct {
	idFn        func(int) string
	rng         *rand.Rand
	flightFn    FlightFn
	maxParallel int
	err         error
}

const defaultMaxParallel = 1

func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		idFn:        cityID,
		flightFn:    CoarseFlight,
		maxParallel: defaultMaxParallel,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func cityID(i int) string { return fmt.Sprintf("C%d", i) }

// airlineName names the k-th parallel carrier.
func airlineName(k int) string { return fmt.Sprintf("A%d", k) }

// CoarseFlight draws durations in half-hour steps up to 4h and prices in
// $50 steps up to $500, so ties between itineraries are common.
func CoarseFlight(rng *rand.Rand, _, _ string, _ int) (float64, float64) {
	if rng == nil {
		return 1, 100
	}
	return float64(1+rng.Intn(8)) / 2, float64(50 * (1 + rng.Intn(10)))
}

// WithIDScheme sets the city naming function.
func WithIDScheme(fn func(int) string) Option {
	return func(c *builderConfig) {
		if fn != nil {
			c.idFn = fn
		}
	}
}

// WithRand uses r as the randomness source. Sharing r across Build calls
// continues its sequence.
func WithRand(r *rand.Rand) Option {
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed uses a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithFlightFn replaces the attribute sampler.
func WithFlightFn(fn FlightFn) Option {
	return func(c *builderConfig) {
		if fn != nil {
			c.flightFn = fn
		}
	}
}

// WithMaxParallel lets each connected pair carry between 1 and k flights
// (uniformly drawn when an RNG is set, exactly k otherwise).
func WithMaxParallel(k int) Option {
	return func(c *builderConfig) {
		if k < 1 {
			c.err = fmt.Errorf("%w: max parallel must be >= 1, got %d", ErrOptionViolation, k)
			return
		}
		c.maxParallel = k
	}
}
