package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs255/rs255/sim"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rs255.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig empty path error: %v", err)
	}
	if cfg.Sweep() != sim.DefaultConfig() {
		t.Errorf("sweep = %+v, want %+v", cfg.Sweep(), sim.DefaultConfig())
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want empty", cfg.ConfigFile)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `[sim]
min_parity = 8
max_parity = 64
step = 8
trials = 100
error_prob = 0.01
erasure_prob = 0.0
seed = 42
workers = 3
out = "report.csv"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	want := SimConfig{
		MinParity:   8,
		MaxParity:   64,
		Step:        8,
		Trials:      100,
		ErrorProb:   0.01,
		ErasureProb: 0,
		Seed:        42,
		Workers:     3,
		Out:         "report.csv",
	}
	if cfg.Sim != want {
		t.Errorf("Sim = %+v, want %+v", cfg.Sim, want)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := writeConfig(t, "[sim]\ntrials = 7\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	d := DefaultConfig().Sim
	if cfg.Sim.Trials != 7 {
		t.Errorf("Trials = %d, want 7", cfg.Sim.Trials)
	}
	if cfg.Sim.MinParity != d.MinParity || cfg.Sim.ErasureProb != d.ErasureProb {
		t.Errorf("missing keys lost their defaults: %+v", cfg.Sim)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/rs255.toml")
	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Errorf("expected ErrConfigFileNotFound, got %v", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[unclosed_section\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "[sim]\ntrials = 5\nparity = 4\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestMergeDefaults(t *testing.T) {
	cfg := &Config{Sim: SimConfig{ErasureProb: 0, Seed: 0}}
	MergeDefaults(cfg)

	d := DefaultConfig().Sim
	if cfg.Sim.MinParity != d.MinParity || cfg.Sim.MaxParity != d.MaxParity {
		t.Errorf("parity range = [%d, %d]", cfg.Sim.MinParity, cfg.Sim.MaxParity)
	}
	if cfg.Sim.Step != d.Step || cfg.Sim.Trials != d.Trials {
		t.Errorf("step %d, trials %d", cfg.Sim.Step, cfg.Sim.Trials)
	}
	if cfg.Sim.ErasureProb != 0 || cfg.Sim.Seed != 0 {
		t.Error("MergeDefaults overwrote meaningful zero values")
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("RS255_MIN_PARITY", "2")
	t.Setenv("RS255_TRIALS", "9")
	t.Setenv("RS255_ERROR_PROB", "0.125")
	t.Setenv("RS255_SEED", "77")
	t.Setenv("RS255_OUT", "/tmp/x.csv")

	cfg := DefaultConfig()
	if err := ApplyEnvironment(cfg); err != nil {
		t.Fatalf("ApplyEnvironment: %v", err)
	}
	if cfg.Sim.MinParity != 2 || cfg.Sim.Trials != 9 {
		t.Errorf("min parity %d, trials %d", cfg.Sim.MinParity, cfg.Sim.Trials)
	}
	if cfg.Sim.ErrorProb != 0.125 || cfg.Sim.Seed != 77 || cfg.Sim.Out != "/tmp/x.csv" {
		t.Errorf("sim = %+v", cfg.Sim)
	}
}

func TestApplyEnvironmentInvalid(t *testing.T) {
	for _, name := range []string{"RS255_TRIALS", "RS255_ERASURE_PROB", "RS255_SEED"} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, "many")
			if err := ApplyEnvironment(DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config: %v", err)
	}
	if err := ValidateConfig(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil config: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Sim.ErrorProb, cfg.Sim.ErasureProb = 0.7, 0.7
	if err := ValidateConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("probabilities above one: %v", err)
	}
	cfg = DefaultConfig()
	cfg.Sim.MaxParity = 300
	if err := ValidateConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("max parity 300: %v", err)
	}
}
