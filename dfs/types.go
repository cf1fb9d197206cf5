// File: types.go
// Role: DFS options and sentinel errors.

package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/skyroute/core"
)

var (
	// ErrViewNil is returned when a nil *core.View is passed.
	ErrViewNil = errors.New("dfs: view is nil")

	// ErrStartCityNotFound indicates that the start city is absent.
	ErrStartCityNotFound = errors.New("dfs: start city not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dfs: invalid option supplied")

	// ErrStop may be returned by a visit callback to end enumeration early.
	// SimplePaths then returns a nil error.
	ErrStop = errors.New("dfs: stop")
)

// Option configures optional behavior of SimplePaths.
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for path enumeration.
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// MaxHops, if non-negative, bounds the number of flights per path.
	// Default is -1 (no limit).
	MaxHops int

	// FilterEdge, if non-nil, is called for each outgoing flight.
	// Return false to skip it.
	FilterEdge func(e core.FlightEdge) bool

	err error
}

// DefaultOptions returns options with a background context, no hop limit
// and no filter.
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:     context.Background(),
		MaxHops: -1,
	}
}

// WithContext sets the context used for cancellation.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxHops limits paths to at most n flights. A limit of 0 yields
// only the empty path, and only when from == to.
func WithMaxHops(n int) Option {
	return func(o *DFSOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxHops must be >= 0, got %d", ErrOptionViolation, n)
			return
		}
		o.MaxHops = n
	}
}

// WithFilterEdge installs a per-flight filter.
func WithFilterEdge(fn func(e core.FlightEdge) bool) Option {
	return func(o *DFSOptions) {
		o.FilterEdge = fn
	}
}
