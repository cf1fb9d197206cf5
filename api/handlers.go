// File: handlers.go
// Role: /api handlers and the mapping of engine errors to HTTP statuses.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/ctxlog"
	"github.com/katalvlaran/skyroute/dijkstra"
	"github.com/katalvlaran/skyroute/planner"
	"github.com/katalvlaran/skyroute/source"
	"github.com/katalvlaran/skyroute/weight"
)

// maxBodyBytes caps update request bodies.
const maxBodyBytes = 1 << 16

// handleRoutes lists every static flight in insertion order.
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	view := s.cfg.Store.Snapshot()
	edges := view.Edges()
	routes := make([]flightJSON, len(edges))
	for i, e := range edges {
		routes[i] = toFlightJSON(e)
	}
	writeJSON(w, http.StatusOK, routesResponse{Routes: routes, Nodes: orEmpty(view.CitiesInOrder())})
}

// handleCities lists the cities of a source, sorted. External failures yield
// an empty list, never an error status.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	src, err := source.ParseSource(r.URL.Query().Get("source"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown source: %s", r.URL.Query().Get("source")))
		return
	}
	if src == source.Graph {
		writeJSON(w, http.StatusOK, citiesResponse{Source: src.String(), Cities: orEmpty(s.cfg.Store.Snapshot().Cities())})
		return
	}

	cities, err := s.cfg.Sources.ExternalCities(r.Context())
	if err != nil {
		ctxlog.FromContext(r.Context()).Warn("external cities unavailable", "err", err)
	}
	writeJSON(w, http.StatusOK, citiesResponse{Source: src.String(), Cities: orEmpty(sortedCopy(cities))})
}

// handleRoute runs one route query.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Missing required params: from, to")
		return
	}

	method, err := planner.ParseMethod(q.Get("method"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown method: %s", q.Get("method")))
		return
	}
	src, err := source.ParseSource(q.Get("source"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown source: %s", q.Get("source")))
		return
	}
	weights, err := parseWeights(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	constraints, err := parseConstraints(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := planner.RouteQuery{
		From:        from,
		To:          to,
		Weights:     weights,
		Constraints: constraints,
		Method:      method,
		Source:      src,
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.SearchTimeout)
	defer cancel()

	res, err := s.cfg.Planner.Plan(ctx, query)
	if err != nil {
		s.writePlanError(w, r, query, err)
		return
	}
	writeJSON(w, http.StatusOK, toRouteResponse(res))
}

func (s *Server) writePlanError(w http.ResponseWriter, r *http.Request, q planner.RouteQuery, err error) {
	var unknown *dijkstra.UnknownCityError
	switch {
	case errors.Is(err, weight.ErrNegativeWeight):
		writeError(w, http.StatusBadRequest, "Weights must be non-negative")
	case errors.Is(err, weight.ErrNonFiniteWeight):
		writeError(w, http.StatusBadRequest, "Weights must be finite")
	case errors.Is(err, planner.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unknown):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown city: %s", unknown.City))
	case errors.Is(err, dijkstra.ErrNotFound):
		writeError(w, http.StatusNotFound, planner.NotFoundMessage(q, err))
	case errors.Is(err, planner.ErrNonFiniteTotals):
		writeError(w, http.StatusUnprocessableEntity, "Route totals overflow; use smaller weights or flight values")
	case errors.Is(err, dijkstra.ErrDeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "Route search timed out")
	default:
		ctxlog.FromContext(r.Context()).Error("route search failed", "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Internal routing error: %v", err))
	}
}

// handleUpdateFlight inserts one flight.
func (s *Server) handleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	// A missing or undecodable body is treated as empty.
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body)
	if body == nil {
		body = map[string]any{}
	}

	e, err := decodeFlight(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.cfg.Flights.AddFlight(r.Context(), e)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ctxlog.FromContext(r.Context()).Error("add flight failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{
		Status:   "ok",
		Receipt:  res.Receipt,
		Edge:     storedFlightJSON{ID: res.Edge.ID, flightJSON: toFlightJSON(res.Edge)},
		Mirrored: res.Mirrored,
	})
}

// handleDirect returns the raw external candidates for one segment.
func (s *Server) handleDirect(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Sources.Available(r.Context()) {
		writeError(w, http.StatusBadRequest, "MeTTa/Hyperon not available")
		return
	}
	from, to := strings.TrimSpace(r.URL.Query().Get("from")), strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Missing required params: from, to")
		return
	}

	cands, err := s.cfg.Sources.Direct(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, source.ErrUnavailable) {
			writeError(w, http.StatusBadRequest, "MeTTa/Hyperon not available")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("MeTTa query failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, directResponse{From: from, To: to, Candidates: orEmpty(cands)})
}

// handleHealth reports external availability and static graph size.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	view := s.cfg.Store.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Hyperon: s.cfg.Sources.Available(r.Context()),
		Nodes:   view.CityCount(),
		Edges:   view.EdgeCount(),
	})
}
