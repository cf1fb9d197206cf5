// Package dijkstra_test contains unit tests for the constrained route search:
// validation, the reference scenarios, constraint handling, optimality against
// exhaustive enumeration, and A*/Dijkstra agreement.
package dijkstra_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/katalvlaran/skyroute/builder"
	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/dfs"
	"github.com/katalvlaran/skyroute/dijkstra"
	"github.com/katalvlaran/skyroute/weight"
	"github.com/stretchr/testify/require"
)

// sampleFlights mirrors the built-in dataset.
var sampleFlights = []core.FlightEdge{
	{From: "Toronto", To: "NewYork", Airline: "AirCanada", DurationHours: 1.5, CostUSD: 220},
	{From: "Toronto", To: "London", Airline: "AirCanada", DurationHours: 7.2, CostUSD: 520},
	{From: "NewYork", To: "London", Airline: "Delta", DurationHours: 6.8, CostUSD: 480},
	{From: "NewYork", To: "Paris", Airline: "Delta", DurationHours: 7.1, CostUSD: 510},
	{From: "London", To: "Paris", Airline: "BA", DurationHours: 1.1, CostUSD: 120},
	{From: "London", To: "Frankfurt", Airline: "Lufthansa", DurationHours: 1.4, CostUSD: 140},
	{From: "Frankfurt", To: "Paris", Airline: "Lufthansa", DurationHours: 1.2, CostUSD: 130},
	{From: "Toronto", To: "Frankfurt", Airline: "Lufthansa", DurationHours: 7.5, CostUSD: 540},
	{From: "Paris", To: "Rome", Airline: "AirFrance", DurationHours: 2.0, CostUSD: 160},
	{From: "Frankfurt", To: "Rome", Airline: "Lufthansa", DurationHours: 2.0, CostUSD: 150},
}

var sampleCoords = weight.Coordinates{
	"Toronto":   {Lat: 43.65107, Lon: -79.347015},
	"NewYork":   {Lat: 40.712776, Lon: -74.005974},
	"London":    {Lat: 51.507351, Lon: -0.127758},
	"Paris":     {Lat: 48.856613, Lon: 2.352222},
	"Frankfurt": {Lat: 50.110924, Lon: 8.682127},
	"Rome":      {Lat: 41.902782, Lon: 12.496366},
}

func viewOf(t *testing.T, edges []core.FlightEdge) *core.View {
	t.Helper()
	g, err := core.NewGraphFromEdges(edges)
	require.NoError(t, err)

	return g.Snapshot()
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSearch_Validation(t *testing.T) {
	ctx := context.Background()
	v := viewOf(t, sampleFlights)

	_, err := dijkstra.Search(ctx, nil, "Paris", "Rome")
	require.ErrorIs(t, err, dijkstra.ErrNilView)

	_, err = dijkstra.Search(ctx, v, "", "Rome")
	require.ErrorIs(t, err, dijkstra.ErrEmptyCity)

	_, err = dijkstra.Search(ctx, v, "Paris", "Atlantis")
	require.ErrorIs(t, err, dijkstra.ErrUnknownCity)
	var uc *dijkstra.UnknownCityError
	require.ErrorAs(t, err, &uc)
	require.Equal(t, "Atlantis", uc.City)

	_, err = dijkstra.Search(ctx, v, "Paris", "Rome", dijkstra.WithWeights(weight.Vector{Duration: -1}))
	require.ErrorIs(t, err, weight.ErrNegativeWeight)

	_, err = dijkstra.Search(ctx, v, "Paris", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxLayovers: dijkstra.Int(-1)}))
	require.ErrorIs(t, err, dijkstra.ErrInvalidConstraint)

	_, err = dijkstra.Search(ctx, v, "Paris", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxPrice: dijkstra.Float(math.NaN())}))
	require.ErrorIs(t, err, dijkstra.ErrInvalidConstraint)

	_, err = dijkstra.Search(ctx, v, "Paris", "Rome", dijkstra.WithMaxExpansions(-1))
	require.ErrorIs(t, err, dijkstra.ErrBadMaxExpansions)
}

// ------------------------------------------------------------------------
// 2. Reference scenarios
// ------------------------------------------------------------------------

func TestSearch_SingleEdge(t *testing.T) {
	v := viewOf(t, []core.FlightEdge{
		{From: "Paris", To: "Rome", Airline: "AirFrance", DurationHours: 2.0, CostUSD: 160},
	})

	p, err := dijkstra.Search(context.Background(), v, "Paris", "Rome",
		dijkstra.WithWeights(weight.Vector{Duration: 1}))
	require.NoError(t, err)
	require.Equal(t, []string{"Paris", "Rome"}, p.Cities)
	require.Len(t, p.Edges, 1)
	require.Equal(t, "AirFrance", p.Edges[0].Airline)
	require.InDelta(t, 2.0, p.DurationHours, 1e-12)
	require.InDelta(t, 160.0, p.CostUSD, 1e-12)
	require.Zero(t, p.Layovers)
	require.InDelta(t, 2.0, p.Weight, 1e-12)
}

func TestSearch_DirectOnlyNeedsConnection(t *testing.T) {
	v := viewOf(t, []core.FlightEdge{
		{From: "London", To: "Paris", Airline: "BA", DurationHours: 1.1, CostUSD: 120},
		{From: "Paris", To: "Rome", Airline: "AirFrance", DurationHours: 2.0, CostUSD: 160},
	})

	_, err := dijkstra.Search(context.Background(), v, "London", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxLayovers: dijkstra.Int(0)}))
	require.ErrorIs(t, err, dijkstra.ErrNotFound)
	require.ErrorIs(t, err, dijkstra.ErrConstraintsTooStrict)

	p, err := dijkstra.Search(context.Background(), v, "London", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxLayovers: dijkstra.Int(1)}))
	require.NoError(t, err)
	require.Equal(t, 1, p.Layovers)
}

func TestSearch_MinPriceRejectsCheapOnlyPath(t *testing.T) {
	v := viewOf(t, []core.FlightEdge{
		{From: "Paris", To: "Rome", Airline: "AirFrance", DurationHours: 2.0, CostUSD: 160},
	})

	_, err := dijkstra.Search(context.Background(), v, "Paris", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MinPrice: dijkstra.Float(500)}))
	require.ErrorIs(t, err, dijkstra.ErrNotFound)
	require.ErrorIs(t, err, dijkstra.ErrConstraintsTooStrict)
}

func TestSearch_NoPath(t *testing.T) {
	v := viewOf(t, sampleFlights)

	_, err := dijkstra.Search(context.Background(), v, "Rome", "Toronto")
	require.ErrorIs(t, err, dijkstra.ErrNotFound)
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
	require.NotErrorIs(t, err, dijkstra.ErrConstraintsTooStrict)
}

func TestSearch_SameCity(t *testing.T) {
	v := viewOf(t, sampleFlights)

	p, err := dijkstra.Search(context.Background(), v, "Paris", "Paris")
	require.NoError(t, err)
	require.Equal(t, []string{"Paris"}, p.Cities)
	require.Empty(t, p.Edges)
	require.Zero(t, p.Weight)

	_, err = dijkstra.Search(context.Background(), v, "Paris", "Paris",
		dijkstra.WithConstraints(dijkstra.Constraints{MinPrice: dijkstra.Float(1)}))
	require.ErrorIs(t, err, dijkstra.ErrConstraintsTooStrict)
}

// ------------------------------------------------------------------------
// 3. Sample network behavior
// ------------------------------------------------------------------------

func TestSearch_SampleFastest(t *testing.T) {
	v := viewOf(t, sampleFlights)

	p, err := dijkstra.Search(context.Background(), v, "Toronto", "Rome")
	require.NoError(t, err)
	// Toronto→Frankfurt→Rome 9.5h beats Toronto→London→Paris→Rome 10.3h.
	require.Equal(t, []string{"Toronto", "Frankfurt", "Rome"}, p.Cities)
	require.InDelta(t, 9.5, p.Weight, 1e-9)
	require.Equal(t, len(p.Cities)-2, p.Layovers)
}

func TestSearch_MinPriceFindsDearerAlternative(t *testing.T) {
	v := viewOf(t, sampleFlights)

	// Cheapest by duration is 690 USD; the floor forces a dearer itinerary.
	p, err := dijkstra.Search(context.Background(), v, "Toronto", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MinPrice: dijkstra.Float(800)}))
	require.NoError(t, err)
	require.GreaterOrEqual(t, p.CostUSD, 800.0)
	require.Equal(t, []string{"Toronto", "London", "Paris", "Rome"}, p.Cities)
	require.InDelta(t, 10.3, p.Weight, 1e-9)
}

func TestSearch_MaxDurationAndPrice(t *testing.T) {
	v := viewOf(t, sampleFlights)
	ctx := context.Background()

	_, err := dijkstra.Search(ctx, v, "Toronto", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxDuration: dijkstra.Float(9.4)}))
	require.ErrorIs(t, err, dijkstra.ErrConstraintsTooStrict)

	p, err := dijkstra.Search(ctx, v, "Toronto", "Rome",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxDuration: dijkstra.Float(9.5)}))
	require.NoError(t, err)
	require.InDelta(t, 9.5, p.DurationHours, 1e-9)

	// The direct flight sits exactly on the price cap.
	p, err = dijkstra.Search(ctx, v, "London", "Paris",
		dijkstra.WithWeights(weight.Vector{Cost: 1}),
		dijkstra.WithConstraints(dijkstra.Constraints{MaxPrice: dijkstra.Float(120)}))
	require.NoError(t, err)
	require.Equal(t, []string{"London", "Paris"}, p.Cities)

	_, err = dijkstra.Search(ctx, v, "London", "Paris",
		dijkstra.WithConstraints(dijkstra.Constraints{MaxPrice: dijkstra.Float(119.99)}))
	require.ErrorIs(t, err, dijkstra.ErrConstraintsTooStrict)
}

func TestSearch_LayoverPenaltyAppliesPerConnection(t *testing.T) {
	v := viewOf(t, []core.FlightEdge{
		{From: "A", To: "B", Airline: "X", DurationHours: 1, CostUSD: 0},
		{From: "B", To: "C", Airline: "X", DurationHours: 1, CostUSD: 0},
		{From: "A", To: "C", Airline: "Y", DurationHours: 2.5, CostUSD: 0},
	})
	ctx := context.Background()

	p, err := dijkstra.Search(ctx, v, "A", "C")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, p.Cities)
	require.InDelta(t, 2.0, p.Weight, 1e-12)

	p, err = dijkstra.Search(ctx, v, "A", "C", dijkstra.WithWeights(weight.Vector{Duration: 1, Layovers: 1}))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, p.Cities)
	require.InDelta(t, 2.5, p.Weight, 1e-12)

	p, err = dijkstra.Search(ctx, v, "A", "C",
		dijkstra.WithWeights(weight.Vector{Duration: 1, Layovers: 1}),
		dijkstra.WithWeightFunc(weight.Func{LayoverPenalty: 0.25}))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, p.Cities)
	require.InDelta(t, 2.25, p.Weight, 1e-12)
}

func TestSearch_TieBreaks(t *testing.T) {
	ctx := context.Background()

	// Equal weight: fewer layovers wins.
	v := viewOf(t, []core.FlightEdge{
		{From: "A", To: "B", Airline: "X", DurationHours: 1},
		{From: "B", To: "D", Airline: "X", DurationHours: 1},
		{From: "A", To: "D", Airline: "Y", DurationHours: 2},
	})
	p, err := dijkstra.Search(ctx, v, "A", "D")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "D"}, p.Cities)

	// Equal weight and layovers: lower cost wins.
	v = viewOf(t, []core.FlightEdge{
		{From: "A", To: "D", Airline: "Dear", DurationHours: 2, CostUSD: 300},
		{From: "A", To: "D", Airline: "Cheap", DurationHours: 2, CostUSD: 100},
	})
	p, err = dijkstra.Search(ctx, v, "A", "D")
	require.NoError(t, err)
	require.Equal(t, "Cheap", p.Edges[0].Airline)

	// Everything equal: lexicographically smaller path wins.
	v = viewOf(t, []core.FlightEdge{
		{From: "A", To: "C", Airline: "X", DurationHours: 1, CostUSD: 50},
		{From: "C", To: "D", Airline: "X", DurationHours: 1, CostUSD: 50},
		{From: "A", To: "B", Airline: "X", DurationHours: 1, CostUSD: 50},
		{From: "B", To: "D", Airline: "X", DurationHours: 1, CostUSD: 50},
	})
	p, err = dijkstra.Search(ctx, v, "A", "D")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "D"}, p.Cities)

	// Identical parallel flights: the first inserted one is kept.
	v = viewOf(t, []core.FlightEdge{
		{From: "A", To: "D", Airline: "X", DurationHours: 2, CostUSD: 100},
		{From: "A", To: "D", Airline: "X", DurationHours: 2, CostUSD: 100},
	})
	p, err = dijkstra.Search(ctx, v, "A", "D")
	require.NoError(t, err)
	require.Equal(t, "e1", p.Edges[0].ID)
}

// ------------------------------------------------------------------------
// 4. Cancellation
// ------------------------------------------------------------------------

func TestSearch_Deadline(t *testing.T) {
	v := viewOf(t, denseNetwork(rand.New(rand.NewSource(7)), 12, 0.9))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dijkstra.Search(ctx, v, "C0", "C11")
	require.ErrorIs(t, err, dijkstra.ErrDeadlineExceeded)
	require.ErrorIs(t, err, context.Canceled)

	_, err = dijkstra.Search(context.Background(), v, "C0", "C11",
		dijkstra.WithConstraints(dijkstra.Constraints{MinPrice: dijkstra.Float(1e9)}),
		dijkstra.WithMaxExpansions(50))
	require.ErrorIs(t, err, dijkstra.ErrDeadlineExceeded)

	ctx, cancel = context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, err = dijkstra.Search(ctx, v, "C0", "C11")
	require.NoError(t, err)
}

// ------------------------------------------------------------------------
// 5. Properties
// ------------------------------------------------------------------------

// denseNetwork builds a random directed network over n cities with edge
// probability p and up to two airlines per pair.
func denseNetwork(rng *rand.Rand, n int, p float64) []core.FlightEdge {
	edges, err := builder.Build(
		[]builder.Option{builder.WithRand(rng), builder.WithMaxParallel(2)},
		builder.RandomNetwork(n, p))
	if err != nil {
		panic(err)
	}

	return edges
}

// bruteForce enumerates every elementary path and returns the best feasible
// score, or +Inf.
func bruteForce(v *core.View, from, to string, w weight.Vector, f weight.Func, c dijkstra.Constraints) float64 {
	best := math.Inf(1)
	_, err := dfs.SimplePaths(v, from, to, func(path []core.FlightEdge) error {
		var dur, cost float64
		for _, e := range path {
			dur += e.DurationHours
			cost += e.CostUSD
		}
		layovers := 0
		if len(path) > 1 {
			layovers = len(path) - 1
		}
		switch {
		case c.MaxLayovers != nil && layovers > *c.MaxLayovers:
		case c.MaxDuration != nil && dur > *c.MaxDuration+1e-9:
		case c.MaxPrice != nil && cost > *c.MaxPrice+1e-9:
		case c.MinPrice != nil && cost+1e-9 < *c.MinPrice:
		default:
			best = math.Min(best, f.PathScore(path, w))
		}
		return nil
	})
	if err != nil {
		panic(err)
	}

	return best
}

func randomConstraints(rng *rand.Rand) dijkstra.Constraints {
	var c dijkstra.Constraints
	if rng.Intn(2) == 0 {
		c.MaxLayovers = dijkstra.Int(rng.Intn(4))
	}
	if rng.Intn(2) == 0 {
		c.MaxDuration = dijkstra.Float(float64(2 + rng.Intn(12)))
	}
	if rng.Intn(2) == 0 {
		c.MaxPrice = dijkstra.Float(float64(100 * (2 + rng.Intn(15))))
	}
	if rng.Intn(2) == 0 {
		c.MinPrice = dijkstra.Float(float64(100 * rng.Intn(12)))
	}

	return c
}

func TestSearch_OptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := weight.Default()

	for trial := 0; trial < 150; trial++ {
		n := 4 + rng.Intn(4)
		v := viewOf(t, denseNetwork(rng, n, 0.45))
		from := fmt.Sprintf("C%d", rng.Intn(n))
		to := fmt.Sprintf("C%d", rng.Intn(n))
		if !v.HasCity(from) || !v.HasCity(to) {
			continue
		}
		w := weight.Vector{
			Duration: float64(rng.Intn(3)),
			Cost:     float64(rng.Intn(3)),
			Layovers: float64(rng.Intn(3)),
		}
		c := randomConstraints(rng)

		want := bruteForce(v, from, to, w, f, c)
		p, err := dijkstra.Search(context.Background(), v, from, to,
			dijkstra.WithWeights(w), dijkstra.WithConstraints(c))

		if math.IsInf(want, 1) {
			require.ErrorIs(t, err, dijkstra.ErrNotFound, "trial %d: %s→%s %+v", trial, from, to, c)
			continue
		}
		require.NoError(t, err, "trial %d: %s→%s %+v", trial, from, to, c)
		require.InDelta(t, want, p.Weight, 1e-9, "trial %d: %s→%s %+v", trial, from, to, c)
		require.InDelta(t, f.PathScore(p.Edges, w), p.Weight, 1e-9)
		require.Equal(t, max(0, len(p.Cities)-2), p.Layovers)
		require.Len(t, p.Edges, len(p.Cities)-1)
		for i, e := range p.Edges {
			require.Equal(t, p.Cities[i], e.From)
			require.Equal(t, p.Cities[i+1], e.To)
		}
	}
}

func TestSearch_ConstraintMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ctx := context.Background()

	score := func(v *core.View, c dijkstra.Constraints) float64 {
		p, err := dijkstra.Search(ctx, v, "C0", "C5", dijkstra.WithConstraints(c),
			dijkstra.WithWeights(weight.Vector{Duration: 1, Cost: 1, Layovers: 1}))
		if err != nil {
			require.ErrorIs(t, err, dijkstra.ErrNotFound)
			return math.Inf(1)
		}
		return p.Weight
	}

	for trial := 0; trial < 40; trial++ {
		v := viewOf(t, denseNetwork(rng, 6, 0.5))
		if !v.HasCity("C0") || !v.HasCity("C5") {
			continue
		}
		loose := dijkstra.Constraints{
			MaxLayovers: dijkstra.Int(3),
			MaxDuration: dijkstra.Float(14),
			MaxPrice:    dijkstra.Float(1500),
			MinPrice:    dijkstra.Float(100),
		}
		base := score(v, loose)

		tighter := []dijkstra.Constraints{loose, loose, loose, loose}
		tighter[0].MaxLayovers = dijkstra.Int(1)
		tighter[1].MaxDuration = dijkstra.Float(6)
		tighter[2].MaxPrice = dijkstra.Float(600)
		tighter[3].MinPrice = dijkstra.Float(700)
		for i, c := range tighter {
			require.GreaterOrEqual(t, score(v, c), base-1e-9, "trial %d tightening %d", trial, i)
		}
	}
}

func TestSearch_AStarMatchesDijkstra(t *testing.T) {
	ctx := context.Background()
	v := viewOf(t, sampleFlights)
	cities := v.Cities()

	vectors := []weight.Vector{
		{Duration: 1},
		{Duration: 1, Cost: 1},
		{Duration: 2, Cost: 0.5, Layovers: 3},
		{Cost: 1},
	}
	speed := weight.CalibrateSpeed(v, sampleCoords, weight.DefaultCruiseSpeedKmph)
	require.Equal(t, weight.DefaultCruiseSpeedKmph, speed)

	for _, from := range cities {
		for _, to := range cities {
			h := weight.Heuristic{Coords: sampleCoords, Goal: to, SpeedKmph: speed}
			for _, w := range vectors {
				plain, errPlain := dijkstra.Search(ctx, v, from, to, dijkstra.WithWeights(w))
				astar, errAStar := dijkstra.Search(ctx, v, from, to, dijkstra.WithWeights(w),
					dijkstra.WithHeuristic(h.ForView(v, w)))
				if errPlain != nil {
					require.ErrorIs(t, errAStar, dijkstra.ErrNotFound)
					continue
				}
				require.NoError(t, errAStar)
				require.InDelta(t, plain.Weight, astar.Weight, 1e-9, "%s→%s %+v", from, to, w)
			}
		}
	}
}
