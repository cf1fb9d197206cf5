// File: heuristic.go
// Role: Great-circle lower bound on remaining flight time (A* heuristic).
// Determinism:
//   - Pure over its inputs. CalibrateSpeed scans edges in insertion order.
// Admissibility:
//   - Estimate(c) = dist(c, goal)/speed. If every flight of the searched
//     graph satisfies dist(u,v)/speed ≤ duration(u,v), the triangle inequality
//     makes Estimate a lower bound on the remaining duration, and
//     Weighted = v.Duration*Estimate a lower bound on the remaining weight
//     for any non-negative Vector.

package weight

import (
	"fmt"
	"math"

	"github.com/katalvlaran/skyroute/core"
)

// LatLon is a geographic coordinate in decimal degrees.
type LatLon struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Coordinates maps a city to its position.
type Coordinates map[string]LatLon

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b LatLon) float64 {
	lat1, lon1 := a.Lat*math.Pi/180, a.Lon*math.Pi/180
	lat2, lon2 := b.Lat*math.Pi/180, b.Lon*math.Pi/180
	dlat, dlon := lat2-lat1, lon2-lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(math.Min(1, h)))
}

// Heuristic estimates the remaining flight hours from a city to Goal.
type Heuristic struct {
	Coords    Coordinates
	Goal      string
	SpeedKmph float64
}

// NewHeuristic validates speed and returns a Heuristic towards goal.
// An infinite speed is allowed and turns every estimate into 0.
func NewHeuristic(coords Coordinates, goal string, speedKmph float64) (Heuristic, error) {
	if !(speedKmph > 0) {
		return Heuristic{}, fmt.Errorf("%w: %v", ErrBadSpeed, speedKmph)
	}

	return Heuristic{Coords: coords, Goal: goal, SpeedKmph: speedKmph}, nil
}

// Estimate returns dist(city, Goal)/SpeedKmph in hours. A missing coordinate
// for either end yields 0.
func (h Heuristic) Estimate(city string) float64 {
	a, ok := h.Coords[city]
	if !ok {
		return 0
	}
	b, ok := h.Coords[h.Goal]
	if !ok {
		return 0
	}
	if math.IsInf(h.SpeedKmph, 1) {
		return 0
	}

	return Haversine(a, b) / h.SpeedKmph
}

// Weighted scales Estimate by the duration weight.
func (h Heuristic) Weighted(v Vector, city string) float64 {
	return v.Duration * h.Estimate(city)
}

// ForView precomputes Weighted for every city of view, indexed by arena
// index, and returns it as a lookup function for the search.
//
// Complexity: O(V).
func (h Heuristic) ForView(view *core.View, v Vector) func(city int) float64 {
	est := make([]float64, view.CityCount())
	if v.Duration > 0 {
		for i := range est {
			est[i] = h.Weighted(v, view.CityAt(i))
		}
	}

	return func(city int) float64 {
		if city < 0 || city >= len(est) {
			return 0
		}
		return est[city]
	}
}

// CalibrateSpeed returns the smallest speed ≥ base under which no flight of
// view beats the great-circle bound, i.e. max(base, dist/duration) over all
// flights. It returns +Inf, which disables the heuristic, when a flight has
// an endpoint without coordinates or covers a positive distance in zero time:
// no finite speed keeps the estimate a lower bound in those cases.
//
// Complexity: O(E).
func CalibrateSpeed(view *core.View, coords Coordinates, base float64) float64 {
	speed := base
	for _, e := range view.Edges() {
		a, okA := coords[e.From]
		b, okB := coords[e.To]
		if !okA || !okB {
			return math.Inf(1)
		}
		d := Haversine(a, b)
		if d == 0 {
			continue
		}
		if e.DurationHours == 0 {
			return math.Inf(1)
		}
		if s := d / e.DurationHours; s > speed {
			speed = s
		}
	}

	return speed
}
