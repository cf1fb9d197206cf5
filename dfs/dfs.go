// File: dfs.go
// Role: elementary path enumeration over a core.View.
// Concurrency: safe to call concurrently; a View is immutable.

package dfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/skyroute/core"
)

// walker encapsulates state during enumeration.
type walker struct {
	view  *core.View
	opts  DFSOptions
	to    string
	visit func(path []core.FlightEdge) error

	onPath map[string]bool
	path   []core.FlightEdge
	count  int
}

// SimplePaths calls visit once for every path from → to in view that
// repeats no city, and returns how many paths were visited.
//
// The slice handed to visit is reused between calls; copy it to retain it.
// When from == to the only path is the empty one.
func SimplePaths(view *core.View, from, to string, visit func(path []core.FlightEdge) error, opts ...Option) (int, error) {
	if view == nil {
		return 0, ErrViewNil
	}
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}
	if dopts.err != nil {
		return 0, dopts.err
	}
	if !view.HasCity(from) {
		return 0, fmt.Errorf("%w: %q", ErrStartCityNotFound, from)
	}

	w := &walker{
		view:   view,
		opts:   dopts,
		to:     to,
		visit:  visit,
		onPath: map[string]bool{from: true},
	}
	err := w.traverse(from)
	if errors.Is(err, ErrStop) {
		err = nil
	}

	return w.count, err
}

// traverse extends the current path from city.
func (w *walker) traverse(city string) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	if city == w.to {
		w.count++
		if w.visit == nil {
			return nil
		}
		return w.visit(w.path)
	}
	if w.opts.MaxHops >= 0 && len(w.path) >= w.opts.MaxHops {
		return nil
	}

	for _, e := range w.view.Neighbors(city) {
		if w.onPath[e.To] {
			continue
		}
		if w.opts.FilterEdge != nil && !w.opts.FilterEdge(e) {
			continue
		}
		w.onPath[e.To] = true
		w.path = append(w.path, e)
		err := w.traverse(e.To)
		w.path = w.path[:len(w.path)-1]
		w.onPath[e.To] = false
		if err != nil {
			return err
		}
	}

	return nil
}
