package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/distinct/internal/seed"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "distinct.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Strategy != "fpsOklab" || cfg.Skip != 16 || cfg.NumSamples != 10000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
strategy: greedyLab
skip: 32
samples: 500
output_dir: from-file
outputs: [css]
`)

	t.Setenv(EnvOutputDir, "from-env")
	t.Setenv(EnvSamples, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	want := Default()
	want.Strategy = "greedyLab"
	want.Skip = 32
	want.NumSamples = 500
	want.OutputDir = "from-env"
	want.Outputs = []string{"css"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit missing config should fail")
	}

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without default file error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("strategy: golden\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Strategy != "golden" {
		t.Errorf("Strategy = %q, want golden", cfg.Strategy)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "strategy: uniform\ncolours: 12\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name: "strategy and samples",
			env:  map[string]string{EnvStrategy: "uniform", EnvSamples: " 250 "},
			check: func(t *testing.T, c *Config) {
				if c.Strategy != "uniform" || c.NumSamples != 250 {
					t.Errorf("got %q/%d", c.Strategy, c.NumSamples)
				}
			},
		},
		{
			name: "seed switches to manual",
			env:  map[string]string{EnvSeed: "-42"},
			check: func(t *testing.T, c *Config) {
				if c.Seed.Mode != string(seed.ModeManual) || c.Seed.Value == nil || *c.Seed.Value != -42 {
					t.Errorf("seed = %+v", c.Seed)
				}
			},
		},
		{name: "bad samples", env: map[string]string{EnvSamples: "many"}, wantErr: true},
		{name: "bad seed", env: map[string]string{EnvSeed: "1.5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyEnv(envMap(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{name: "unknown strategy", mutate: func(c *Config) { c.Strategy = "rainbow" }, errSub: "strategy"},
		{name: "skip too large", mutate: func(c *Config) { c.Skip = 256 }, errSub: "skip"},
		{name: "negative samples", mutate: func(c *Config) { c.NumSamples = -1 }, errSub: "samples"},
		{name: "zero samples", mutate: func(c *Config) { c.NumSamples = 0 }, errSub: "samples"},
		{name: "zero skip", mutate: func(c *Config) { c.Skip = 0 }, errSub: "skip"},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, errSub: "workers"},
		{name: "bad seed mode", mutate: func(c *Config) { c.Seed.Mode = "dice" }, errSub: "seed mode"},
		{name: "manual without value", mutate: func(c *Config) { c.Seed.Mode = "manual" }, errSub: "seed value"},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }, errSub: "output_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errSub)
			}
		})
	}
}

func TestSeedConfig(t *testing.T) {
	v := int64(7)
	tests := []struct {
		name     string
		seed     Seed
		fallback seed.Mode
		want     seed.Mode
	}{
		{name: "fallback", fallback: seed.ModeContent, want: seed.ModeContent},
		{name: "value implies manual", seed: Seed{Value: &v}, fallback: seed.ModeRandom, want: seed.ModeManual},
		{name: "explicit mode", seed: Seed{Mode: "filepath"}, fallback: seed.ModeRandom, want: seed.ModeFilepath},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Seed = tt.seed
		if got := cfg.SeedConfig(tt.fallback).Mode; got != tt.want {
			t.Errorf("%s: mode = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if !strings.Contains(string(data), "strategy: fpsOklab") {
		t.Errorf("marshalled config missing strategy:\n%s", data)
	}
}
