package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skyroute/bfs"
	"github.com/katalvlaran/skyroute/core"
)

// network builds a view from "from>to" pairs.
func network(t *testing.T, hops ...[2]string) *core.View {
	t.Helper()
	g := core.NewGraph()
	for _, h := range hops {
		_, err := g.AddEdge(core.FlightEdge{From: h[0], To: h[1], Airline: "Air", DurationHours: 1, CostUSD: 100})
		require.NoError(t, err)
	}

	return g.Snapshot()
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "A")
	require.ErrorIs(t, err, bfs.ErrViewNil)

	v := network(t, [2]string{"A", "B"})
	_, err = bfs.BFS(v, "missing")
	require.ErrorIs(t, err, bfs.ErrStartCityNotFound)

	_, err = bfs.BFS(v, "A", bfs.WithMaxHops(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)

	res, err := bfs.BFS(v, "A")
	require.NoError(t, err)
	_, err = res.PathTo("Z")
	require.ErrorIs(t, err, bfs.ErrNotReached)
}

// ------------------------------------------------------------------------
// 2. Layers
// ------------------------------------------------------------------------

func TestBFS_DirectedLayers(t *testing.T) {
	v := network(t,
		[2]string{"Toronto", "NewYork"},
		[2]string{"Toronto", "London"},
		[2]string{"NewYork", "London"},
		[2]string{"London", "Paris"},
		[2]string{"Paris", "Rome"},
		[2]string{"Rome", "Toronto"},
	)

	res, err := bfs.BFS(v, "London")
	require.NoError(t, err)
	require.Equal(t, []string{"London", "Paris", "Rome", "Toronto", "NewYork"}, res.Order)
	require.Equal(t, map[string]int{"London": 0, "Paris": 1, "Rome": 2, "Toronto": 3, "NewYork": 4}, res.Hops)

	path, err := res.PathTo("NewYork")
	require.NoError(t, err)
	require.Equal(t, []string{"London", "Paris", "Rome", "Toronto", "NewYork"}, path)

	path, err = res.PathTo("London")
	require.NoError(t, err)
	require.Equal(t, []string{"London"}, path)
}

func TestBFS_MaxHopsAndFilter(t *testing.T) {
	v := network(t,
		[2]string{"A", "B"},
		[2]string{"B", "C"},
		[2]string{"A", "D"},
		[2]string{"D", "C"},
	)

	res, err := bfs.BFS(v, "A", bfs.WithMaxHops(1))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "D"}, res.Order)
	_, err = res.PathTo("C")
	require.ErrorIs(t, err, bfs.ErrNotReached)

	res, err = bfs.BFS(v, "A", bfs.WithFilterEdge(func(e core.FlightEdge) bool { return e.To != "B" }))
	require.NoError(t, err)
	path, err := res.PathTo("C")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "D", "C"}, path)
}

func TestBFS_FilterPicksAcceptedParallelFlight(t *testing.T) {
	g := core.NewGraph()
	for _, e := range []core.FlightEdge{
		{From: "X", To: "Y", Airline: "Slow", DurationHours: 10, CostUSD: 50},
		{From: "X", To: "Y", Airline: "Fast", DurationHours: 1, CostUSD: 90},
		{From: "Y", To: "Z", Airline: "Hop", DurationHours: 1, CostUSD: 20},
	} {
		_, err := g.AddEdge(e)
		require.NoError(t, err)
	}

	res, err := bfs.BFS(g.Snapshot(), "X", bfs.WithFilterEdge(func(e core.FlightEdge) bool {
		return e.DurationHours <= 5
	}))
	require.NoError(t, err)
	legs, err := res.Legs("Z")
	require.NoError(t, err)
	require.Len(t, legs, 2)
	require.Equal(t, "Fast", legs[0].Airline)
	require.Equal(t, "Hop", legs[1].Airline)
}

// ------------------------------------------------------------------------
// 3. Hooks and cancellation
// ------------------------------------------------------------------------

func TestBFS_HooksAndCancellation(t *testing.T) {
	v := network(t, [2]string{"A", "B"}, [2]string{"B", "C"})

	boom := errors.New("boom")
	res, err := bfs.BFS(v, "A", bfs.WithOnVisit(func(city string, _ int) error {
		if city == "B" {
			return boom
		}
		return nil
	}))
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"A", "B"}, res.Order)

	res, err = bfs.BFS(v, "A", bfs.WithOnVisit(func(city string, _ int) error {
		if city == "B" {
			return bfs.ErrStop
		}
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, res.Order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(v, "A", bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

// ------------------------------------------------------------------------
// 4. Reachable
// ------------------------------------------------------------------------

func TestReachable(t *testing.T) {
	v := network(t, [2]string{"Paris", "Rome"}, [2]string{"London", "Paris"})

	require.True(t, bfs.Reachable(v, "London", "Rome"))
	require.False(t, bfs.Reachable(v, "Rome", "London"))
	require.True(t, bfs.Reachable(v, "Rome", "Rome"))
	require.False(t, bfs.Reachable(v, "London", "Tokyo"))
	require.False(t, bfs.Reachable(nil, "London", "Rome"))
}
