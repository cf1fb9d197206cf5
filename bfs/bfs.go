// File: bfs.go
// Role: layered breadth-first walk over a core.View and Reachable.
// Concurrency: read-only over an immutable View; safe for concurrent use.

package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/skyroute/core"
)

// BFS walks view from start, one layer of flights at a time.
//
// Errors: ErrViewNil, ErrStartCityNotFound, ErrOptionViolation, the context
// error, or a wrapped OnVisit error. On error the partial Result is returned.
func BFS(view *core.View, start string, opts ...Option) (*Result, error) {
	if view == nil {
		return nil, ErrViewNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !view.HasCity(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartCityNotFound, start)
	}

	res := &Result{
		Start: start,
		Hops:  map[string]int{start: 0},
		Via:   make(map[string]core.FlightEdge),
	}
	err := walk(view, o, res)
	if errors.Is(err, ErrStop) {
		err = nil
	}
	return res, err
}

func walk(view *core.View, o options, res *Result) error {
	layer := []string{res.Start}
	for hops := 0; len(layer) > 0; hops++ {
		if err := o.ctx.Err(); err != nil {
			return err
		}
		for _, city := range layer {
			res.Order = append(res.Order, city)
			if o.onVisit != nil {
				if err := o.onVisit(city, hops); err != nil {
					if errors.Is(err, ErrStop) {
						return err
					}
					return fmt.Errorf("bfs: visit %q: %w", city, err)
				}
			}
		}
		if o.maxHops > 0 && hops >= o.maxHops {
			return nil
		}

		var next []string
		for _, city := range layer {
			for _, e := range view.Neighbors(city) {
				if _, seen := res.Hops[e.To]; seen {
					continue
				}
				if o.filter != nil && !o.filter(e) {
					continue
				}
				res.Hops[e.To] = hops + 1
				res.Via[e.To] = e
				next = append(next, e.To)
			}
		}
		layer = next
	}
	return nil
}

// Reachable reports whether any sequence of flights leads from from to to.
// A city reaches itself; unknown cities reach nothing.
func Reachable(view *core.View, from, to string) bool {
	if view == nil || !view.HasCity(from) || !view.HasCity(to) {
		return false
	}
	found := false
	_, _ = BFS(view, from, WithOnVisit(func(city string, _ int) error {
		if city == to {
			found = true
			return ErrStop
		}
		return nil
	}))
	return found
}
