// File: respond.go
// Role: JSON response helpers and wire shapes.

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/planner"
)

// writeJSON encodes v as JSON and writes it with the given status code.
// v is marshalled before the header goes out, so an unencodable value
// becomes a 500 error body instead of an empty response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Default().Error("encode response", "err", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorBody{Error: "Internal encoding error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// orEmpty keeps empty lists encoding as [] rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

type flightJSON struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Airline  string  `json:"airline"`
	Duration float64 `json:"duration"`
	Cost     float64 `json:"cost"`
	Layovers int     `json:"layovers"`
}

type storedFlightJSON struct {
	ID string `json:"id"`
	flightJSON
}

func toFlightJSON(e core.FlightEdge) flightJSON {
	return flightJSON{
		From:     e.From,
		To:       e.To,
		Airline:  e.Airline,
		Duration: e.DurationHours,
		Cost:     e.CostUSD,
		Layovers: e.Layovers,
	}
}

type routesResponse struct {
	Routes []flightJSON `json:"routes"`
	Nodes  []string     `json:"nodes"`
}

type citiesResponse struct {
	Source string   `json:"source"`
	Cities []string `json:"cities"`
}

type legJSON struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Airline  string  `json:"airline"`
	Duration float64 `json:"duration"`
	Cost     float64 `json:"cost"`
}

type totalsJSON struct {
	DurationHours float64 `json:"duration_hours"`
	CostUSD       float64 `json:"cost_usd"`
	Layovers      int     `json:"layovers"`
	Score         float64 `json:"score"`
	Method        string  `json:"method"`
}

type routeResponse struct {
	Path   []string   `json:"path"`
	Edges  []legJSON  `json:"edges"`
	Totals totalsJSON `json:"totals"`
}

func toRouteResponse(res *planner.RouteResult) routeResponse {
	legs := make([]legJSON, len(res.Edges))
	for i, e := range res.Edges {
		legs[i] = legJSON{From: e.From, To: e.To, Airline: e.Airline, Duration: e.DurationHours, Cost: e.CostUSD}
	}
	return routeResponse{
		Path:  res.Path,
		Edges: legs,
		Totals: totalsJSON{
			DurationHours: res.Totals.DurationHours,
			CostUSD:       res.Totals.CostUSD,
			Layovers:      res.Totals.Layovers,
			Score:         res.Totals.Score,
			Method:        res.Totals.Method.String(),
		},
	}
}

type updateResponse struct {
	Status   string           `json:"status"`
	Receipt  string           `json:"receipt"`
	Edge     storedFlightJSON `json:"edge"`
	Mirrored bool             `json:"mirrored"`
}

type directResponse struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Candidates []string `json:"candidates"`
}

type healthResponse struct {
	Hyperon bool `json:"hyperon"`
	Nodes   int  `json:"nodes"`
	Edges   int  `json:"edges"`
}
