// File: types.go
// Role: BFS options, sentinel errors and the Result type.

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/skyroute/core"
)

var (
	// ErrViewNil is returned for a nil view.
	ErrViewNil = errors.New("bfs: view is nil")

	// ErrStartCityNotFound is returned when the start city is not in the view.
	ErrStartCityNotFound = errors.New("bfs: start city not found")

	// ErrOptionViolation is returned when an Option received a bad value.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNotReached is returned by Result.PathTo for cities BFS never reached.
	ErrNotReached = errors.New("bfs: city not reached")

	// ErrStop may be returned by an OnVisit hook to end the walk early.
	// BFS then returns the partial Result and a nil error.
	ErrStop = errors.New("bfs: stop")
)

// Option configures BFS.
type Option func(*options)

type options struct {
	ctx     context.Context
	onVisit func(city string, hops int) error
	maxHops int // 0: unlimited
	filter  func(e core.FlightEdge) bool
	err     error
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithContext sets the context checked once per layer.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithOnVisit installs a hook called once per reached city, start included,
// in visit order. A returned error ends the walk; ErrStop ends it cleanly.
func WithOnVisit(fn func(city string, hops int) error) Option {
	return func(o *options) { o.onVisit = fn }
}

// WithMaxHops stops expanding after n flights. 0 means no limit.
func WithMaxHops(n int) Option {
	return func(o *options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: max hops %d", ErrOptionViolation, n)
			return
		}
		o.maxHops = n
	}
}

// WithFilterEdge skips flights for which fn returns false.
func WithFilterEdge(fn func(e core.FlightEdge) bool) Option {
	return func(o *options) { o.filter = fn }
}

// Result is the outcome of a BFS walk.
type Result struct {
	// Start is the city the walk began at.
	Start string
	// Order lists reached cities in visit order.
	Order []string
	// Hops maps each reached city to the fewest flights from Start.
	Hops map[string]int
	// Via maps each reached city except Start to the flight that reached it.
	Via map[string]core.FlightEdge
}

// Legs returns the flights of a fewest-hop itinerary from Start to city.
func (r *Result) Legs(city string) ([]core.FlightEdge, error) {
	n, ok := r.Hops[city]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotReached, city)
	}
	legs := make([]core.FlightEdge, n)
	for i := n - 1; i >= 0; i-- {
		e := r.Via[city]
		legs[i] = e
		city = e.From
	}
	return legs, nil
}

// PathTo returns the cities of a fewest-hop itinerary from Start to city.
func (r *Result) PathTo(city string) ([]string, error) {
	legs, err := r.Legs(city)
	if err != nil {
		return nil, err
	}
	path := make([]string, 0, len(legs)+1)
	path = append(path, r.Start)
	for _, e := range legs {
		path = append(path, e.To)
	}
	return path, nil
}
