// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewCities indicates a city count below the constructor minimum.
var ErrTooFewCities = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without an RNG.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or an invalid generated flight.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrOptionViolation indicates an invalid option value.
var ErrOptionViolation = errors.New("builder: invalid option value")

// builderErrorf prefixes a constructor error with its method name.
func builderErrorf(method, format string, args ...any) error {
	return fmt.Errorf(method+": "+format, args...)
}
