// Package config loads project settings from defaults, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/jmylchreest/distinct/internal/generator"
	"github.com/jmylchreest/distinct/internal/seed"
)

// DefaultFile is read from the working directory when no config path is given.
const DefaultFile = ".distinct.yaml"

// Environment variables that override file settings.
const (
	EnvStrategy  = "DISTINCT_STRATEGY"
	EnvOutputDir = "DISTINCT_OUTPUT_DIR"
	EnvSamples   = "DISTINCT_SAMPLES"
	EnvSeed      = "DISTINCT_SEED"
)

// Seed selects how the random source is seeded.
// An empty mode lets each command pick its own default.
type Seed struct {
	Mode  string `yaml:"mode,omitempty"`
	Value *int64 `yaml:"value,omitempty"`
}

// Config holds every setting a command can take from a file or the environment.
type Config struct {
	Strategy    string   `yaml:"strategy"`
	Skip        int      `yaml:"skip"`
	NumSamples  int      `yaml:"samples"`
	Workers     int      `yaml:"workers"`
	Seed        Seed     `yaml:"seed"`
	OutputDir   string   `yaml:"output_dir"`
	Outputs     []string `yaml:"outputs"`
	TemplateDir string   `yaml:"template_dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Strategy:   string(generator.DefaultStrategy),
		Skip:       generator.DefaultSkip,
		NumSamples: generator.DefaultNumSamples,
		Workers:    runtime.GOMAXPROCS(0),
		OutputDir:  "data",
		Outputs:    []string{"list", "css", "html"},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// process environment, in that order of precedence. With an empty path the
// DefaultFile is used when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-selected config file
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStrategy); ok && v != "" {
		c.Strategy = v
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvSamples); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSamples, err)
		}
		c.NumSamples = n
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Seed = Seed{Mode: string(seed.ModeManual), Value: &n}
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := generator.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if c.Skip < 1 || c.Skip >= 256 {
		return fmt.Errorf("skip must be in [1,255], got %d", c.Skip)
	}
	if c.NumSamples < 1 {
		return fmt.Errorf("samples must be positive, got %d", c.NumSamples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Seed.Mode != "" {
		mode, err := seed.ParseMode(c.Seed.Mode)
		if err != nil {
			return err
		}
		if mode == seed.ModeManual && c.Seed.Value == nil {
			return fmt.Errorf("seed value is required for manual seed mode")
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	return nil
}

// SeedConfig resolves the seed settings, using fallback when no mode is set.
func (c *Config) SeedConfig(fallback seed.Mode) seed.Config {
	mode := seed.Mode(c.Seed.Mode)
	if mode == "" {
		mode = fallback
		if c.Seed.Value != nil {
			mode = seed.ModeManual
		}
	}
	return seed.Config{Mode: mode, Value: c.Seed.Value}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
