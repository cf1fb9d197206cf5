// Package core_test contains fixtures shared by the core tests.
package core_test

import (
	"testing"

	"github.com/katalvlaran/skyroute/core"
	"github.com/stretchr/testify/require"
)

// Cities used across core tests.
const (
	CityNY     = "New York"
	CityLondon = "London"
	CityParis  = "Paris"
	CityTokyo  = "Tokyo"
)

// flight builds an edge literal without an ID.
func flight(from, to, airline string, hours, usd float64) core.FlightEdge {
	return core.FlightEdge{From: from, To: to, Airline: airline, DurationHours: hours, CostUSD: usd}
}

// mustGraph builds a graph from edges and fails the test on any error.
func mustGraph(t *testing.T, edges ...core.FlightEdge) *core.Graph {
	t.Helper()
	g, err := core.NewGraphFromEdges(edges)
	require.NoError(t, err)

	return g
}

// ids extracts edge IDs preserving order.
func ids(edges []core.FlightEdge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}

	return out
}
