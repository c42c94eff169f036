package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs255/rs255/sim"
)

// Numeric flags default to -1, which keeps the value from the config file,
// the environment or the built-in defaults.
type simCmd struct {
	Config      string  `short:"c" type:"path" help:"TOML file with a [sim] table."`
	MinParity   int     `name:"min-parity" default:"-1" help:"Smallest parity level."`
	MaxParity   int     `name:"max-parity" default:"-1" help:"Largest parity level."`
	Step        int     `default:"-1" help:"Parity level increment."`
	Trials      int     `short:"t" default:"-1" help:"Trials per parity level."`
	ErrorProb   float64 `name:"error-prob" default:"-1" help:"Per-symbol error probability."`
	ErasureProb float64 `name:"erasure-prob" default:"-1" help:"Per-symbol erasure probability."`
	Seed        int64   `default:"-1" help:"Random seed."`
	Workers     int     `short:"w" default:"-1" help:"Concurrent levels, 0 for GOMAXPROCS."`
	Out         string  `short:"o" help:"CSV output file (default stdout)."`

	MetricsFormat string `name:"metrics-format" default:"text" enum:"text,prometheus" help:"Format of the metrics dump written to stderr."`
}

// resolve loads the file, then applies the environment and the flags.
func (c *simCmd) resolve() (*Config, error) {
	cfg, err := LoadConfig(c.Config)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnvironment(cfg); err != nil {
		return nil, err
	}
	c.mergeFlags(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags overrides cfg with every flag that was given a value.
func (c *simCmd) mergeFlags(cfg *Config) {
	if c.MinParity >= 0 {
		cfg.Sim.MinParity = c.MinParity
	}
	if c.MaxParity >= 0 {
		cfg.Sim.MaxParity = c.MaxParity
	}
	if c.Step >= 0 {
		cfg.Sim.Step = c.Step
	}
	if c.Trials >= 0 {
		cfg.Sim.Trials = c.Trials
	}
	if c.ErrorProb >= 0 {
		cfg.Sim.ErrorProb = c.ErrorProb
	}
	if c.ErasureProb >= 0 {
		cfg.Sim.ErasureProb = c.ErasureProb
	}
	if c.Seed >= 0 {
		cfg.Sim.Seed = uint64(c.Seed)
	}
	if c.Workers >= 0 {
		cfg.Sim.Workers = c.Workers
	}
	if c.Out != "" {
		cfg.Sim.Out = c.Out
	}
}

func (c *simCmd) Run(g *globals) error {
	cfg, err := c.resolve()
	if err != nil {
		return err
	}
	sweep := cfg.Sweep()
	g.log.Info("rs255 sim", "version", version, "config", cfg.ConfigFile,
		"min_parity", sweep.MinParity, "max_parity", sweep.MaxParity,
		"step", sweep.Step, "seed", sweep.Seed)

	runner, err := sim.NewRunner(sweep,
		sim.WithLogger(g.log.Module("sim")),
		sim.WithRegistry(g.registry))
	if err != nil {
		return err
	}
	levels, err := runner.Run(g.ctx)
	if err != nil {
		return err
	}

	var out io.Writer = g.stdout
	if cfg.Sim.Out != "" {
		f, err := os.Create(cfg.Sim.Out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := sim.WriteCSV(out, levels); err != nil {
		return err
	}
	if c.MetricsFormat == "prometheus" {
		return g.registry.WritePrometheus(g.stderr, "")
	}
	_, err = g.registry.WriteTo(g.stderr)
	return err
}
