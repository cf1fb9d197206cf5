// Package dataset loads the static flight network: flights plus the city
// coordinates used by the A* heuristic.
//
// The file format is YAML:
//
//	cities:
//	  Paris: {lat: 48.856613, lon: 2.352222}
//	flights:
//	  - {from: Paris, to: Rome, airline: AirFrance, duration: 2.0, cost: 160}
//
// A built-in sample network (six cities, ten flights) is used when no file
// is configured.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/weight"
)

//go:embed sample.yaml
var sample []byte

// ErrEmpty indicates a dataset without flights.
var ErrEmpty = errors.New("dataset: no flights")

// Flight is one dataset row.
type Flight struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Airline  string  `yaml:"airline"`
	Duration float64 `yaml:"duration"`
	Cost     float64 `yaml:"cost"`
	Layovers int     `yaml:"layovers"`
}

// Edge converts f to a store edge (without ID).
func (f Flight) Edge() core.FlightEdge {
	return core.FlightEdge{
		From:          f.From,
		To:            f.To,
		Airline:       f.Airline,
		DurationHours: f.Duration,
		CostUSD:       f.Cost,
		Layovers:      f.Layovers,
	}
}

// Dataset is a static flight network.
type Dataset struct {
	Cities  weight.Coordinates `yaml:"cities"`
	Flights []Flight           `yaml:"flights"`
}

// Parse decodes and validates a dataset. Unknown keys are rejected.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Dataset
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	if len(d.Flights) == 0 {
		return nil, ErrEmpty
	}
	for i, f := range d.Flights {
		if err := core.ValidateEdge(f.Edge()); err != nil {
			return nil, fmt.Errorf("dataset: flight %d (%s → %s): %w", i, f.From, f.To, err)
		}
	}
	if d.Cities == nil {
		d.Cities = weight.Coordinates{}
	}

	return &d, nil
}

// Sample returns the built-in network.
func Sample() *Dataset {
	d, err := Parse(sample)
	if err != nil {
		panic(fmt.Sprintf("dataset: built-in sample is invalid: %v", err))
	}
	return d
}

// Load reads the dataset at path, or returns Sample when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Sample(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Edges returns the flights as store edges, in file order.
func (d *Dataset) Edges() []core.FlightEdge {
	out := make([]core.FlightEdge, len(d.Flights))
	for i, f := range d.Flights {
		out[i] = f.Edge()
	}
	return out
}

// Graph builds a store holding the dataset's flights.
func (d *Dataset) Graph() (*core.Graph, error) {
	return core.NewGraphFromEdges(d.Edges())
}
