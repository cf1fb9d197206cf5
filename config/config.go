// Package config holds the skyrouted configuration: defaults, a YAML file
// layer and validation. Command-line flags are applied on top by the binary.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the process configuration.
type Config struct {
	Listen      string `yaml:"listen"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	DatasetPath string `yaml:"dataset_path"` // empty: built-in sample network
	StaticDir   string `yaml:"static_dir"`   // empty: no frontend

	Knowledge Knowledge `yaml:"knowledge"`
	Search    Search    `yaml:"search"`
}

// Knowledge configures the external knowledge store.
type Knowledge struct {
	DBPath        string        `yaml:"db_path"` // empty: no external store
	SeedFiles     []string      `yaml:"seed_files"`
	Timeout       time.Duration `yaml:"timeout"`
	MirrorTimeout time.Duration `yaml:"mirror_timeout"`
}

// Search configures route searches.
type Search struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxExpansions   int           `yaml:"max_expansions"`
	LayoverPenalty  float64       `yaml:"layover_penalty"`
	CruiseSpeedKmph float64       `yaml:"cruise_speed_kmph"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:    ":5000",
		LogLevel:  "info",
		LogFormat: "text",
		Knowledge: Knowledge{
			Timeout:       2 * time.Second,
			MirrorTimeout: time.Second,
		},
		Search: Search{
			Timeout:         5 * time.Second,
			MaxExpansions:   1_000_000,
			LayoverPenalty:  1.0,
			CruiseSpeedKmph: 900,
		},
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns Default. Unknown keys are rejected. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	switch {
	case c.Listen == "":
		return fmt.Errorf("%w: listen is required", ErrInvalid)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalid, c.LogFormat)
	case c.Knowledge.Timeout <= 0:
		return fmt.Errorf("%w: knowledge.timeout must be positive", ErrInvalid)
	case c.Knowledge.MirrorTimeout <= 0:
		return fmt.Errorf("%w: knowledge.mirror_timeout must be positive", ErrInvalid)
	case len(c.Knowledge.SeedFiles) > 0 && c.Knowledge.DBPath == "":
		return fmt.Errorf("%w: knowledge.seed_files requires knowledge.db_path", ErrInvalid)
	case c.Search.Timeout <= 0:
		return fmt.Errorf("%w: search.timeout must be positive", ErrInvalid)
	case c.Search.MaxExpansions < 0:
		return fmt.Errorf("%w: search.max_expansions must be non-negative", ErrInvalid)
	case c.Search.LayoverPenalty < 0 || math.IsNaN(c.Search.LayoverPenalty) || math.IsInf(c.Search.LayoverPenalty, 0):
		return fmt.Errorf("%w: search.layover_penalty must be finite and non-negative", ErrInvalid)
	case !(c.Search.CruiseSpeedKmph > 0) || math.IsInf(c.Search.CruiseSpeedKmph, 0):
		return fmt.Errorf("%w: search.cruise_speed_kmph must be positive", ErrInvalid)
	}
	return nil
}
