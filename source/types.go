// File: types.go
// Role: source selector, the ExternalSource contract, Adapter options and
//       sentinel errors.

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/kb"
)

// Sentinel errors.
var (
	// ErrUnknownSource indicates a source name ParseSource does not accept.
	ErrUnknownSource = errors.New("source: unknown source")

	// ErrUnavailable indicates that no external store is configured or that
	// it failed its probe.
	ErrUnavailable = errors.New("source: external store unavailable")

	// ErrMalformedFact indicates a fact that cannot be mapped to a flight.
	ErrMalformedFact = errors.New("source: malformed flight fact")

	// ErrBadTimeout indicates a non-positive external timeout option.
	ErrBadTimeout = errors.New("source: timeout must be positive")
)

// DefaultTimeout bounds one external fetch.
const DefaultTimeout = 2 * time.Second

// Source selects where a query's graph comes from.
type Source int

const (
	// Graph is the static in-memory store.
	Graph Source = iota
	// External overlays the knowledge store's facts on the static store.
	External
)

// String returns the wire name of s ("python" or "metta").
func (s Source) String() string {
	if s == External {
		return "metta"
	}
	return "python"
}

// ParseSource maps wire names onto a Source. Empty selects Graph.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "python", "graph", "static":
		return Graph, nil
	case "metta", "external":
		return External, nil
	default:
		return Graph, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

// ExternalSource is the fact-extraction contract of an external knowledge
// store. *kb.Store implements it.
type ExternalSource interface {
	Probe(ctx context.Context) error
	FlightFacts(ctx context.Context) ([]kb.Atom, error)
	DirectFacts(ctx context.Context, from, to string) ([]kb.Atom, error)
	Assert(ctx context.Context, fact kb.Atom) error
}

// Snapshotter yields the current static view. *core.Graph implements it.
type Snapshotter interface {
	Snapshot() *core.View
}

// Resolution is the outcome of Adapter.Resolve.
type Resolution struct {
	View   *core.View
	Source Source
	// Degraded is set when External was requested but the static view was
	// returned instead.
	Degraded error
	// Skipped counts external facts that could not be used.
	Skipped int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithExternal attaches an external knowledge store. A nil store leaves the
// adapter static-only.
func WithExternal(ext ExternalSource) Option {
	return func(a *Adapter) { a.external = ext }
}

// WithTimeout bounds each external fetch.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d <= 0 {
			a.err = fmt.Errorf("%w: %v", ErrBadTimeout, d)
			return
		}
		a.timeout = d
	}
}

// WithLogger sets the adapter logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
