// File: params.go
// Role: query-string and JSON body decoding for the handlers.
// Conventions:
//   - Constraint parameters that are absent, empty, "none" or "null" are
//     unconstrained. "0" is a real limit: max_layovers=0 means direct only.
//   - Weights that are absent or empty take their defaults (1, 0, 0).

package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/dijkstra"
	"github.com/katalvlaran/skyroute/weight"
)

var (
	errWeightsNotNumeric = errors.New("Weights must be numeric")
	errBadFieldTypes     = errors.New("Invalid field types")
)

// unset reports whether a constraint value means "unconstrained".
func unset(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none", "null":
		return true
	default:
		return false
	}
}

func parseWeights(q url.Values) (weight.Vector, error) {
	v := weight.DefaultVector()
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"w_duration", &v.Duration},
		{"w_cost", &v.Cost},
		{"w_layovers", &v.Layovers},
	} {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, errWeightsNotNumeric
		}
		*f.dst = x
	}
	return v, nil
}

func parseConstraints(q url.Values) (dijkstra.Constraints, error) {
	var c dijkstra.Constraints

	if raw := q.Get("max_layovers"); !unset(raw) {
		n, err := parseWhole(raw)
		if err != nil || n < 0 {
			return c, fmt.Errorf("max_layovers must be a non-negative integer, got %q", raw)
		}
		c.MaxLayovers = dijkstra.Int(n)
	}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"max_duration", &c.MaxDuration},
		{"max_price", &c.MaxPrice},
		{"min_price", &c.MinPrice},
	} {
		raw := q.Get(f.name)
		if unset(raw) {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return c, fmt.Errorf("%s must be a non-negative number, got %q", f.name, raw)
		}
		*f.dst = dijkstra.Float(x)
	}

	return c, nil
}

// parseWhole accepts "3" and "3.0".
func parseWhole(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		return 0, fmt.Errorf("not a whole number: %q", raw)
	}
	return int(x), nil
}

// flightFields lists the required members of an update body.
var flightFields = []string{"start", "end", "airline", "duration", "cost"}

// decodeFlight maps an update body onto a FlightEdge. Numbers may be JSON
// numbers or numeric strings; names are trimmed.
func decodeFlight(body map[string]any) (core.FlightEdge, error) {
	var missing []string
	for _, k := range flightFields {
		if _, ok := body[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return core.FlightEdge{}, fmt.Errorf("Missing fields: %s", strings.Join(missing, ", "))
	}

	var e core.FlightEdge
	var err error
	if e.From, err = nameField(body["start"]); err != nil {
		return e, err
	}
	if e.To, err = nameField(body["end"]); err != nil {
		return e, err
	}
	if e.Airline, err = nameField(body["airline"]); err != nil {
		return e, err
	}
	if e.DurationHours, err = numberField(body["duration"]); err != nil {
		return e, err
	}
	if e.CostUSD, err = numberField(body["cost"]); err != nil {
		return e, err
	}
	if raw, ok := body["layovers"]; ok && raw != nil {
		x, err := numberField(raw)
		if err != nil || x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
			return e, errBadFieldTypes
		}
		e.Layovers = int(x)
	}
	return e, nil
}

func nameField(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", errBadFieldTypes
	}
}

func numberField(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, errBadFieldTypes
		}
		return x, nil
	default:
		return 0, errBadFieldTypes
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
