package planner

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/dataset"
	"github.com/katalvlaran/skyroute/source"
	"github.com/katalvlaran/skyroute/weight"
)

// fixedResolver serves one prebuilt view per source.
type fixedResolver map[source.Source]*core.View

func (r fixedResolver) Resolve(_ context.Context, src source.Source) source.Resolution {
	return source.Resolution{View: r[src], Source: src}
}

func TestCalibratedSpeed_CachedPerSource(t *testing.T) {
	d := dataset.Sample()
	g, err := d.Graph()
	require.NoError(t, err)
	static := g.Snapshot()
	overlay, errs := core.Overlay(static, []core.FlightEdge{
		{From: "Rome", To: "Paris", Airline: "ITA", DurationHours: 2.1, CostUSD: 150},
	})
	require.Empty(t, errs)

	p, err := New(fixedResolver{source.Graph: static, source.External: overlay}, WithCoordinates(d.Cities))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := source.Graph
			if i%2 == 1 {
				src = source.External
			}
			res, err := p.Plan(context.Background(), RouteQuery{
				From: "Toronto", To: "Rome", Weights: weight.Vector{Duration: 1}, Method: AStar, Source: src,
			})
			assert.NoError(t, err)
			if err == nil {
				assert.Equal(t, []string{"Toronto", "Frankfurt", "Rome"}, res.Path)
			}
		}(i)
	}
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Same(t, static, p.speeds[source.Graph].view)
	assert.Same(t, overlay, p.speeds[source.External].view)
	assert.Equal(t, weight.DefaultCruiseSpeedKmph, p.speeds[source.Graph].speed)
}
