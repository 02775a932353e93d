package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/distinct/internal/config"
	"github.com/jmylchreest/distinct/internal/generator"
	"github.com/jmylchreest/distinct/internal/seed"
)

// strategyValue is a pflag.Value accepting canonical strategy names and aliases.
type strategyValue struct {
	strategy generator.Strategy
}

var _ pflag.Value = (*strategyValue)(nil)

func (v *strategyValue) String() string { return string(v.strategy) }

func (v *strategyValue) Set(s string) error {
	parsed, err := generator.ParseStrategy(s)
	if err != nil {
		return err
	}
	v.strategy = parsed
	return nil
}

func (v *strategyValue) Type() string { return "strategy" }

// enumValue is a pflag.Value restricted to a fixed set of choices.
type enumValue struct {
	value   string
	choices []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, choices ...string) *enumValue {
	return &enumValue{value: def, choices: choices}
}

func (v *enumValue) String() string { return v.value }

func (v *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(v.choices, s) {
		return fmt.Errorf("must be one of: %s", strings.Join(v.choices, ", "))
	}
	v.value = s
	return nil
}

func (v *enumValue) Type() string { return "string" }

// Preview modes.
const (
	previewAuto   = "auto"
	previewAlways = "always"
	previewNever  = "never"
)

// addPreviewFlag registers --preview. A bare --preview means always.
func addPreviewFlag(cmd *cobra.Command) *enumValue {
	v := newEnumValue(previewAuto, previewAuto, previewAlways, previewNever)
	cmd.Flags().Var(v, "preview", "show ANSI colour swatches (auto, always, never)")
	cmd.Flags().Lookup("preview").NoOptDefVal = previewAlways
	return v
}

// wantPreview resolves a preview mode against the command's output stream.
func wantPreview(mode string, cmd *cobra.Command) bool {
	switch mode {
	case previewAlways:
		return true
	case previewNever:
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// searchFlags are the generation settings shared by generate and process.
type searchFlags struct {
	strategy strategyValue
	skip     int
	samples  int
	workers  int
	seedMode string
	seed     int64
}

func (f *searchFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().VarP(&f.strategy, "strategy", "s", fmt.Sprintf("generation strategy (default %q, see 'distinct strategies')", defaults.Strategy))
	cmd.Flags().IntVar(&f.skip, "skip", defaults.Skip, "grid step for the greedy Lab search (1-255)")
	cmd.Flags().IntVar(&f.samples, "samples", defaults.NumSamples, "random samples drawn by FPS sampling")
	cmd.Flags().IntVar(&f.workers, "workers", defaults.Workers, "goroutines used for candidate scans")
	cmd.Flags().StringVar(&f.seedMode, "seed-mode", "", "seed mode (content, filepath, manual, random)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed value (implies --seed-mode manual)")
}

// apply overlays explicitly set flags onto cfg.
func (f *searchFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = string(f.strategy.strategy)
	}
	if flags.Changed("skip") {
		cfg.Skip = f.skip
	}
	if flags.Changed("samples") {
		cfg.NumSamples = f.samples
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("seed") {
		v := f.seed
		cfg.Seed = config.Seed{Mode: string(seed.ModeManual), Value: &v}
	}
	if flags.Changed("seed-mode") {
		cfg.Seed.Mode = f.seedMode
	}
	return cfg.Validate()
}
