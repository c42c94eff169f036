package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rs255/rs255/sim"
)

// Configuration errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// envPrefix prefixes every environment override, e.g. RS255_TRIALS.
const envPrefix = "RS255_"

// SimConfig is the [sim] table of the config file.
type SimConfig struct {
	MinParity   int     `toml:"min_parity"`
	MaxParity   int     `toml:"max_parity"`
	Step        int     `toml:"step"`
	Trials      int     `toml:"trials"`
	ErrorProb   float64 `toml:"error_prob"`
	ErasureProb float64 `toml:"erasure_prob"`
	Seed        uint64  `toml:"seed"`
	Workers     int     `toml:"workers"`

	// Out is the CSV destination; empty means stdout.
	Out string `toml:"out"`
}

// Config aggregates the TOML file, environment and CLI flags.
type Config struct {
	Sim SimConfig `toml:"sim"`

	// ConfigFile is the path of the loaded file, if any.
	ConfigFile string `toml:"-"`
}

// DefaultConfig returns the simulation defaults.
func DefaultConfig() *Config {
	d := sim.DefaultConfig()
	return &Config{Sim: SimConfig{
		MinParity:   d.MinParity,
		MaxParity:   d.MaxParity,
		Step:        d.Step,
		Trials:      d.Trials,
		ErrorProb:   d.ErrorProb,
		ErasureProb: d.ErasureProb,
		Seed:        d.Seed,
		Workers:     d.Workers,
	}}
}

// LoadConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default; unknown keys are an error. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	cfg.ConfigFile = path
	MergeDefaults(cfg)
	return cfg, nil
}

// MergeDefaults fills fields whose zero value is never valid. Zero
// probabilities, seed and workers are meaningful and left alone.
func MergeDefaults(cfg *Config) {
	d := DefaultConfig().Sim
	if cfg.Sim.MinParity == 0 {
		cfg.Sim.MinParity = d.MinParity
	}
	if cfg.Sim.MaxParity == 0 {
		cfg.Sim.MaxParity = d.MaxParity
	}
	if cfg.Sim.Step == 0 {
		cfg.Sim.Step = d.Step
	}
	if cfg.Sim.Trials == 0 {
		cfg.Sim.Trials = d.Trials
	}
}

// ApplyEnvironment overrides fields from RS255_* variables (for example
// RS255_TRIALS, RS255_ERASURE_PROB). Unparsable values are reported.
func ApplyEnvironment(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"MIN_PARITY", &cfg.Sim.MinParity},
		{"MAX_PARITY", &cfg.Sim.MaxParity},
		{"STEP", &cfg.Sim.Step},
		{"TRIALS", &cfg.Sim.Trials},
		{"WORKERS", &cfg.Sim.Workers},
	}
	for _, e := range ints {
		if v := os.Getenv(envPrefix + e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, envPrefix, e.name, v)
			}
			*e.dst = n
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"ERROR_PROB", &cfg.Sim.ErrorProb},
		{"ERASURE_PROB", &cfg.Sim.ErasureProb},
	}
	for _, e := range floats {
		if v := os.Getenv(envPrefix + e.name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, envPrefix, e.name, v)
			}
			*e.dst = f
		}
	}

	if v := os.Getenv(envPrefix + "SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q", ErrInvalidConfig, envPrefix, v)
		}
		cfg.Sim.Seed = n
	}
	if v := os.Getenv(envPrefix + "OUT"); v != "" {
		cfg.Sim.Out = v
	}
	return nil
}

// ValidateConfig checks cfg and returns the first problem found.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Sweep().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Sweep converts the file configuration into a simulation sweep.
func (c *Config) Sweep() sim.Config {
	return sim.Config{
		MinParity:   c.Sim.MinParity,
		MaxParity:   c.Sim.MaxParity,
		Step:        c.Sim.Step,
		Trials:      c.Sim.Trials,
		ErrorProb:   c.Sim.ErrorProb,
		ErasureProb: c.Sim.ErasureProb,
		Seed:        c.Sim.Seed,
		Workers:     c.Sim.Workers,
	}
}
