// Package dijkstra implements a label-setting resource-constrained shortest
// path search (RCSP) over flight graph snapshots, in a plain Dijkstra and an
// A* flavour.
//
// A single best distance per city is not enough once caps are involved: a
// cheaper partial path may later break a cap that a dearer one respects.
// Each city therefore keeps a set of mutually non-dominated labels, and the
// first destination label popped from the best-first queue that passes the
// result filter is optimal.
//
// Complexity:
//
//   - Time:  O(L·d·(log L + k)) where L is the number of labels created, d the
//     out-degree and k the live label count per city (dominance checks).
//   - Space: O(L·p) where p is the path length carried by every label.
//
// Notes on implementation choices:
//
//   - Lazy deletion: dominated labels are flagged dead and skipped on pop.
//   - The context is polled every ctxCheckInterval pops.
//   - Float accumulations are compared with tolerance eps against caps.
package dijkstra

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/katalvlaran/skyroute/bfs"
	"github.com/katalvlaran/skyroute/core"
)

const (
	// ctxCheckInterval is the number of pops between two context polls.
	ctxCheckInterval = 64

	// eps absorbs floating-point drift when sums are compared to caps.
	eps = 1e-9
)

// Search returns the minimum-weight elementary path from → to in view under
// the configured constraints.
//
// Preconditions and validation (in order):
//  1. Options are valid (weights, constraints, budget).
//  2. view is non-nil (ErrNilView).
//  3. from and to are non-empty (ErrEmptyCity) and cities of view
//     (*UnknownCityError).
//
// Outcome:
//   - *Path on success. from == to yields a single-city path with zero totals
//     when it passes MinPrice.
//   - ErrNotFound wrapped with ErrNoPath or ErrConstraintsTooStrict.
//   - ErrDeadlineExceeded when ctx ends or MaxExpansions is exhausted.
func Search(ctx context.Context, view *core.View, from, to string, opts ...Option) (*Path, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if view == nil {
		return nil, ErrNilView
	}
	if from == "" || to == "" {
		return nil, ErrEmptyCity
	}
	src, ok := view.Index(from)
	if !ok {
		return nil, &UnknownCityError{City: from}
	}
	dst, ok := view.Index(to)
	if !ok {
		return nil, &UnknownCityError{City: to}
	}

	r := &runner{
		view:    view,
		options: cfg,
		src:     src,
		dst:     dst,
		labels:  make([][]*label, view.CityCount()),
	}
	r.init()
	best, err := r.process(ctx)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, r.notFound(from, to)
	}

	return r.path(best), nil
}

// label is a partial path ending at city.
type label struct {
	city     int
	weight   float64
	duration float64
	cost     float64
	hops     int
	path     []int            // arena indices, origin first
	via      *core.FlightEdge // edge that reached city; nil for the origin
	parent   *label
	priority float64 // weight + h(city)
	dead     bool    // dominated after insertion
}

// layovers counts connections along the label's path.
func (l *label) layovers() int {
	if l.hops == 0 {
		return 0
	}
	return l.hops - 1
}

// onPath reports whether city already appears on the label's path.
func (l *label) onPath(city int) bool {
	for _, c := range l.path {
		if c == city {
			return true
		}
	}
	return false
}

// runner holds the mutable state of a single search.
type runner struct {
	view     *core.View
	options  Options
	src, dst int
	labels   [][]*label // live and dead labels per city
	pq       labelPQ
	expanded int
}

// init pushes the origin label.
func (r *runner) init() {
	r.pq = labelPQ{view: r.view}
	heap.Init(&r.pq)

	start := &label{city: r.src, path: []int{r.src}}
	start.priority = r.h(r.src)
	r.labels[r.src] = append(r.labels[r.src], start)
	heap.Push(&r.pq, start)
}

// h evaluates the heuristic; 0 without one.
func (r *runner) h(city int) float64 {
	if r.options.Heuristic == nil {
		return 0
	}
	return r.options.Heuristic(city)
}

// process pops labels best-first until an acceptable destination label
// appears or the queue empties (nil, nil).
func (r *runner) process(ctx context.Context) (*label, error) {
	pops := 0
	for r.pq.Len() > 0 {
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDeadlineExceeded, err)
			}
		}
		pops++

		l := heap.Pop(&r.pq).(*label)
		if l.dead {
			continue
		}

		if l.city == r.dst {
			if r.acceptable(l) {
				return l, nil
			}
			// Destination labels are never extended: paths are elementary.
			continue
		}

		r.expanded++
		if budget := r.options.MaxExpansions; budget > 0 && r.expanded > budget {
			return nil, fmt.Errorf("%w: expansion budget %d exhausted", ErrDeadlineExceeded, budget)
		}
		r.relax(l)
	}

	return nil, nil
}

// acceptable applies the result-level MinPrice filter.
func (r *runner) acceptable(l *label) bool {
	minPrice := r.options.Constraints.MinPrice
	return minPrice == nil || l.cost+eps >= *minPrice
}

// relax extends l along every outgoing arc, pruning on the caps and on
// dominance at the target city.
func (r *runner) relax(l *label) {
	c := r.options.Constraints
	transfer := l.hops > 0
	newLayovers := l.hops // layovers after one more hop

	if c.MaxLayovers != nil && newLayovers > *c.MaxLayovers {
		return
	}

	for _, arc := range r.view.Arcs(l.city) {
		if l.onPath(arc.To) {
			continue
		}
		e := arc.Edge
		duration := l.duration + e.DurationHours
		if c.MaxDuration != nil && duration > *c.MaxDuration+eps {
			continue
		}
		cost := l.cost + e.CostUSD
		if c.MaxPrice != nil && cost > *c.MaxPrice+eps {
			continue
		}

		w := l.weight + r.options.Func.Edge(e, r.options.Weights, transfer)
		path := make([]int, len(l.path)+1)
		copy(path, l.path)
		path[len(l.path)] = arc.To

		next := &label{
			city:     arc.To,
			weight:   w,
			duration: duration,
			cost:     cost,
			hops:     l.hops + 1,
			path:     path,
			via:      e,
			parent:   l,
			priority: w + r.h(arc.To),
		}
		if r.insert(next) {
			heap.Push(&r.pq, next)
		}
	}
}

// insert stores l at its city unless a live label there covers it. Live
// labels covered by l are retired. Two labels covering each other keep the
// one that ranks first in queue order.
func (r *runner) insert(l *label) bool {
	stored := r.labels[l.city]
	for _, s := range stored {
		if s.dead || !r.covers(s, l) {
			continue
		}
		if !r.covers(l, s) || !r.pq.rankBefore(l, s) {
			return false
		}
	}
	for _, s := range stored {
		if !s.dead && r.covers(l, s) {
			s.dead = true
		}
	}

	// Compact dead labels to keep dominance checks short.
	live := stored[:0]
	for _, s := range stored {
		if !s.dead {
			live = append(live, s)
		}
	}
	r.labels[l.city] = append(live, l)

	return true
}

// covers reports whether every feasible completion of b is also a feasible
// completion of a with no larger weight, layovers, duration or price
// outcome, for labels at the same city.
func (r *runner) covers(a, b *label) bool {
	if a.weight > b.weight || a.layovers() > b.layovers() || a.duration > b.duration {
		return false
	}
	if !r.costCovers(a.cost, b.cost) {
		return false
	}
	if r.options.Constraints.MinPrice != nil {
		// With a price floor a longer detour can become necessary, so only
		// a label whose visited set is a subset of b's leaves b's suffixes
		// open.
		for _, c := range a.path {
			if !b.onPath(c) {
				return false
			}
		}
	}

	return true
}

// costCovers compares accumulated prices. Without a floor lower is better.
// With a floor, a already at or above it stays above it, and below it a
// higher price is closer to it; a ceiling additionally requires a ≤ b.
func (r *runner) costCovers(a, b float64) bool {
	c := r.options.Constraints
	if c.MinPrice == nil {
		return a <= b
	}
	if a == b {
		return true
	}
	reached := a+eps >= *c.MinPrice
	if c.MaxPrice != nil {
		return reached && a <= b
	}

	return reached || a >= b
}

// path reconstructs the result from the accepted destination label.
func (r *runner) path(l *label) *Path {
	p := &Path{
		Cities:        make([]string, len(l.path)),
		Edges:         make([]core.FlightEdge, l.hops),
		Weight:        l.weight,
		Layovers:      l.layovers(),
		DurationHours: l.duration,
		CostUSD:       l.cost,
		Expanded:      r.expanded,
	}
	for i, c := range l.path {
		p.Cities[i] = r.view.CityAt(c)
	}
	for cur, i := l, l.hops-1; cur.via != nil; cur, i = cur.parent, i-1 {
		p.Edges[i] = *cur.via
	}

	return p
}

// notFound classifies an exhausted search.
func (r *runner) notFound(from, to string) error {
	if !bfs.Reachable(r.view, from, to) {
		return fmt.Errorf("%w: %w: %s → %s", ErrNotFound, ErrNoPath, from, to)
	}

	return fmt.Errorf("%w: %w: %s → %s", ErrNotFound, ErrConstraintsTooStrict, from, to)
}

// labelPQ is a min-heap of labels ordered by priority, then fewer layovers,
// then lower cost, then the lexicographically smaller city path.
type labelPQ struct {
	view  *core.View
	items []*label
}

// rankBefore reports whether a pops before b.
func (pq *labelPQ) rankBefore(a, b *label) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if la, lb := a.layovers(), b.layovers(); la != lb {
		return la < lb
	}
	if a.cost != b.cost {
		return a.cost < b.cost
	}

	return pq.pathLess(a.path, b.path)
}

// pathLess compares two paths city name by city name.
func (pq *labelPQ) pathLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		na, nb := pq.view.CityAt(a[i]), pq.view.CityAt(b[i])
		if na != nb {
			return na < nb
		}
	}

	return len(a) < len(b)
}

func (pq *labelPQ) Len() int           { return len(pq.items) }
func (pq *labelPQ) Less(i, j int) bool { return pq.rankBefore(pq.items[i], pq.items[j]) }
func (pq *labelPQ) Swap(i, j int)      { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

// Push adds x, which must be a *label.
func (pq *labelPQ) Push(x any) { pq.items = append(pq.items, x.(*label)) }

// Pop removes and returns the last element.
func (pq *labelPQ) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]

	return item
}
