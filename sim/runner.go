package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rs255/rs255/gf256"
	"github.com/rs255/rs255/log"
	"github.com/rs255/rs255/metrics"
	"github.com/rs255/rs255/rs255"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("sim: invalid configuration")

// Config describes a simulation sweep over parity levels.
type Config struct {
	MinParity   int
	MaxParity   int
	Step        int
	Trials      int
	ErrorProb   float64
	ErasureProb float64
	Seed        uint64

	// Workers bounds the number of levels simulated concurrently. Zero
	// means GOMAXPROCS.
	Workers int
}

// DefaultConfig sweeps every parity level with an erasure-only channel.
func DefaultConfig() Config {
	return Config{
		MinParity:   rs255.MinParity,
		MaxParity:   rs255.MaxParity,
		Step:        1,
		Trials:      20,
		ErrorProb:   0.0,
		ErasureProb: 0.05,
		Seed:        1,
	}
}

// Validate checks the sweep bounds and channel probabilities.
func (c Config) Validate() error {
	if c.MinParity < rs255.MinParity || c.MinParity > rs255.MaxParity {
		return fmt.Errorf("%w: min parity %d not in [%d, %d]",
			ErrInvalidConfig, c.MinParity, rs255.MinParity, rs255.MaxParity)
	}
	if c.MaxParity < c.MinParity || c.MaxParity > rs255.MaxParity {
		return fmt.Errorf("%w: max parity %d not in [%d, %d]",
			ErrInvalidConfig, c.MaxParity, c.MinParity, rs255.MaxParity)
	}
	if c.Step < 1 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	}
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative workers %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := NewChannel(c.ErrorProb, c.ErasureProb); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Parities lists the parity levels of the sweep in ascending order.
func (c Config) Parities() []int {
	var out []int
	for n := c.MinParity; n <= c.MaxParity; n += c.Step {
		out = append(out, n)
	}
	return out
}

// Runner executes a sweep. All levels share one field and one metrics
// registry.
type Runner struct {
	cfg      Config
	field    *gf256.Field
	channel  *Channel
	source   *MessageSource
	registry *metrics.Registry
	log      *log.Logger

	codecMetrics   *metrics.CodecMetrics
	trials         *metrics.Counter
	miscorrections *metrics.Counter
	levels         *metrics.Counter
}

// Option configures a Runner.
type Option func(*Runner)

// WithRegistry records codec and simulation metrics in reg instead of
// metrics.DefaultRegistry.
func WithRegistry(reg *metrics.Registry) Option {
	return func(r *Runner) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithField makes every codec of the sweep use f.
func WithField(f *gf256.Field) Option {
	return func(r *Runner) {
		if f != nil {
			r.field = f
		}
	}
}

// NewRunner validates cfg and prepares a Runner.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ch, err := NewChannel(cfg.ErrorProb, cfg.ErasureProb)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:      cfg,
		field:    gf256.Default(),
		channel:  ch,
		source:   NewMessageSource(cfg.Seed),
		registry: metrics.DefaultRegistry,
		log:      log.Default().Module("sim"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.codecMetrics = metrics.NewCodecMetrics(r.registry)
	r.trials = r.registry.Counter(metrics.SimTrials)
	r.miscorrections = r.registry.Counter(metrics.SimMiscorrections)
	r.levels = r.registry.Counter(metrics.SimLevelsCompleted)
	return r, nil
}

// Run simulates every level and returns the tallies in parity order. Levels
// run concurrently; the first failure or a cancelled ctx stops the sweep.
func (r *Runner) Run(ctx context.Context) ([]Level, error) {
	parities := r.cfg.Parities()
	workers := r.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	r.log.Info("simulation started",
		"levels", len(parities), "trials", r.cfg.Trials, "workers", workers,
		"error_prob", r.cfg.ErrorProb, "erasure_prob", r.cfg.ErasureProb)
	start := time.Now()

	out := make([]Level, len(parities))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range parities {
		g.Go(func() error {
			lvl, err := r.runLevel(ctx, n)
			if err != nil {
				return err
			}
			out[i] = lvl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.log.Info("simulation finished", "levels", len(parities), "elapsed", time.Since(start))
	return out, nil
}

// runLevel simulates one parity level. Its RNG is seeded by (seed, parity)
// so the result does not depend on scheduling.
func (r *Runner) runLevel(ctx context.Context, parity int) (Level, error) {
	codec, err := rs255.New(parity,
		rs255.WithField(r.field),
		rs255.WithLogger(r.log),
		rs255.WithMetrics(r.codecMetrics))
	if err != nil {
		return Level{}, err
	}
	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(parity)))
	lvl := Level{Parity: parity, MessageLen: codec.MessageLen()}

	for trial := 0; trial < r.cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return Level{}, err
		}
		msg := r.source.Message(parity, trial, codec.MessageLen())
		cw, err := codec.Encode(msg)
		if err != nil {
			return Level{}, err
		}
		tx := r.channel.Transmit(rng, cw)
		got, _, err := codec.Decode(tx.Received, tx.Mask)

		var o outcome
		switch {
		case errors.Is(err, rs255.ErrUncorrectable):
			o = detected
		case err != nil:
			return Level{}, fmt.Errorf("parity %d trial %d: %w", parity, trial, err)
		case bytes.Equal(got, cw):
			o = recovered
		default:
			o = miscorrected
			r.miscorrections.Inc()
		}
		lvl.record(tx.WithinRadius(parity), o)
		r.trials.Inc()
	}

	r.levels.Inc()
	r.log.Debug("level complete", "parity", parity,
		"within", lvl.WithinRadius, "beyond", lvl.BeyondRadius,
		"miscorrected", lvl.Miscorrected, "failures", lvl.Failures())
	return lvl, nil
}
