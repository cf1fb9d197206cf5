// File: methods_edges.go
// Role: Edge lifecycle: validation, AddEdge, ID generation.
// Determinism:
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
//   - Outgoing arcs keep insertion order, which searches rely on for tie-breaks.
// Concurrency:
//   - AddEdge holds g.mu for the whole insertion and publishes a new View
//     before releasing it.

package core

import (
	"fmt"
	"math"
	"strconv"
)

// edgeIDPrefix is the textual prefix of store-assigned edge identifiers.
const edgeIDPrefix = 'e'

// ValidateEdge checks the attribute invariants of a flight edge without
// touching any graph. Every failure wraps ErrValidation and one specific
// sentinel.
func ValidateEdge(e FlightEdge) error {
	switch {
	case e.From == "" || e.To == "":
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyCity)
	case e.From == e.To:
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrLoopNotAllowed, e.From)
	case math.IsNaN(e.DurationHours) || math.IsInf(e.DurationHours, 0):
		return fmt.Errorf("%w: %w: duration", ErrValidation, ErrNonFinite)
	case math.IsNaN(e.CostUSD) || math.IsInf(e.CostUSD, 0):
		return fmt.Errorf("%w: %w: cost", ErrValidation, ErrNonFinite)
	case e.DurationHours < 0:
		return fmt.Errorf("%w: %w: %v", ErrValidation, ErrNegativeDuration, e.DurationHours)
	case e.CostUSD < 0:
		return fmt.Errorf("%w: %w: %v", ErrValidation, ErrNegativeCost, e.CostUSD)
	case e.Layovers < 0:
		return fmt.Errorf("%w: %w: %d", ErrValidation, ErrNegativeLayovers, e.Layovers)
	}

	return nil
}

// AddEdge validates e, assigns it a fresh ID, creates missing endpoint
// cities and appends the edge to its origin's outgoing list. The stored edge
// (with ID) is returned.
//
// Identical payloads inserted twice become two distinct edges: the store
// never deduplicates by value.
//
// Steps:
//  1. Validate attributes (ValidateEdge).
//  2. Lock g.mu.
//  3. Ensure both endpoints exist in the city arena.
//  4. Generate the edge ID, append to the edge arena and the origin's arcs.
//  5. Publish a new View.
//
// Complexity: O(1) amortized for the insertion plus O(V) for publication
// (adjacency headers are copied; edge data is shared).
func (g *Graph) AddEdge(e FlightEdge) (FlightEdge, error) {
	if err := ValidateEdge(e); err != nil {
		return FlightEdge{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	from := g.ensureCity(e.From)
	to := g.ensureCity(e.To)

	e.ID = nextEdgeID(g)
	stored := &e
	g.edges = append(g.edges, stored)
	g.adjacency[from] = append(g.adjacency[from], Arc{Edge: stored, To: to})

	g.publish()

	return e, nil
}

// EdgeCount returns the number of edges in the latest snapshot.
func (g *Graph) EdgeCount() int {
	return g.Snapshot().EdgeCount()
}

// nextEdgeID returns the next textual edge identifier. Callers hold g.mu.
func nextEdgeID(g *Graph) string {
	g.nextEdgeID++
	buf := make([]byte, 0, 12)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, g.nextEdgeID, 10)

	return string(buf)
}
