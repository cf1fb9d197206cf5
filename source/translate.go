// File: translate.go
// Role: total mapping between flight-route facts and core.FlightEdge.

package source

import (
	"fmt"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/kb"
)

// Attribute tags of a flight-route fact.
const (
	tagDuration = "duration"
	tagCost     = "cost"
	tagLayovers = "layovers"
)

// TranslateFact maps a fact of the form
//
//	(flight-route From To Airline (duration D) (cost C) [(layovers L)])
//
// onto a FlightEdge. Endpoints and airline may be symbols or strings.
// Attributes may appear in any order; unknown tags are ignored; layovers
// defaults to 0. The edge ID is left empty. Field ranges are checked later
// by core.ValidateEdge. Every failure wraps ErrMalformedFact.
func TranslateFact(fact kb.Atom) (core.FlightEdge, error) {
	var e core.FlightEdge
	if fact.Head() != kb.FlightRoute {
		return e, fmt.Errorf("%w: head is not %s: %s", ErrMalformedFact, kb.FlightRoute, fact)
	}
	if len(fact.Children) < 4 {
		return e, fmt.Errorf("%w: want from, to, airline: %s", ErrMalformedFact, fact)
	}

	names := [3]string{}
	for i := range names {
		n, ok := fact.Children[i+1].Name()
		if !ok || n == "" {
			return e, fmt.Errorf("%w: term %d is not a name: %s", ErrMalformedFact, i+1, fact)
		}
		names[i] = n
	}
	e.From, e.To, e.Airline = names[0], names[1], names[2]

	var haveDuration, haveCost bool
	for _, attr := range fact.Children[4:] {
		tag := attr.Head()
		if tag != tagDuration && tag != tagCost && tag != tagLayovers {
			continue
		}
		if len(attr.Children) != 2 || attr.Children[1].Kind != kb.KindNumber {
			return e, fmt.Errorf("%w: bad %s attribute: %s", ErrMalformedFact, tag, fact)
		}
		x := attr.Children[1].Num
		switch tag {
		case tagDuration:
			e.DurationHours, haveDuration = x, true
		case tagCost:
			e.CostUSD, haveCost = x, true
		case tagLayovers:
			if x != float64(int(x)) {
				return e, fmt.Errorf("%w: layovers must be whole: %s", ErrMalformedFact, fact)
			}
			e.Layovers = int(x)
		}
	}
	if !haveDuration || !haveCost {
		return e, fmt.Errorf("%w: duration and cost are required: %s", ErrMalformedFact, fact)
	}

	return e, nil
}

// EncodeFact is the inverse of TranslateFact. Names are written as strings
// so that cities containing spaces survive the round trip.
func EncodeFact(e core.FlightEdge) kb.Atom {
	return kb.Expr(
		kb.Sym(kb.FlightRoute),
		kb.Str(e.From),
		kb.Str(e.To),
		kb.Str(e.Airline),
		kb.Expr(kb.Sym(tagDuration), kb.Num(e.DurationHours)),
		kb.Expr(kb.Sym(tagCost), kb.Num(e.CostUSD)),
		kb.Expr(kb.Sym(tagLayovers), kb.Num(float64(e.Layovers))),
	)
}

// candidate renders a fact in the debug shape (Airline duration cost layovers).
func candidate(fact kb.Atom) (string, error) {
	e, err := TranslateFact(fact)
	if err != nil {
		return "", err
	}
	return kb.Expr(
		kb.Sym(e.Airline),
		kb.Num(e.DurationHours),
		kb.Num(e.CostUSD),
		kb.Num(float64(e.Layovers)),
	).String(), nil
}
