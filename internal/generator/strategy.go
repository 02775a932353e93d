// Package generator produces sets of visually distinct colours.
package generator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/distinct/internal/colour"
)

// Strategy names a colour generation strategy.
type Strategy string

const (
	// StrategyUniform sweeps the hue circle in equal steps.
	StrategyUniform Strategy = "uniform"

	// StrategyEvenSplit sweeps the hue circle with a bright half and a dark half.
	StrategyEvenSplit Strategy = "evenSplit"

	// StrategyGoldenAngle steps hues by the golden angle with bright and dark halves.
	StrategyGoldenAngle Strategy = "goldenAngle"

	// StrategyReferencePalette samples the fixed 20-colour reference palette.
	StrategyReferencePalette Strategy = "referencePalette"

	// StrategyGreedyLab runs a greedy max-min search over an RGB grid in CIE Lab.
	StrategyGreedyLab Strategy = "greedyLab"

	// StrategyFPSOklab runs farthest-point sampling over random samples in OKLab.
	StrategyFPSOklab Strategy = "fpsOklab"
)

// DefaultStrategy is the strategy used when none is configured.
const DefaultStrategy = StrategyFPSOklab

// Func generates n colours.
type Func func(ctx context.Context, n int, opts Options) ([]colour.RGB, error)

// Descriptor describes a registered strategy.
type Descriptor struct {
	Strategy    Strategy
	Description string
	// EvenOnly is set for strategies that require an even colour count.
	EvenOnly bool
	// Randomised is set for strategies whose output depends on Options.Rand.
	Randomised bool
	Func       Func
}

// deterministic adapts a count-only generator to Func.
func deterministic(fn func(n int) ([]colour.RGB, error)) Func {
	return func(_ context.Context, n int, _ Options) ([]colour.RGB, error) {
		return fn(n)
	}
}

// descriptors lists every strategy in display order.
var descriptors = []Descriptor{
	{
		Strategy:    StrategyFPSOklab,
		Description: "Farthest-point sampling in OKLab - maximum visual distinctness",
		Randomised:  true,
		Func:        FPSOklab,
	},
	{
		Strategy:    StrategyUniform,
		Description: "Uniform distribution around the hue circle",
		Func:        deterministic(Uniform),
	},
	{
		Strategy:    StrategyEvenSplit,
		Description: "Uniform hue distribution - first half bright, second half dark",
		EvenOnly:    true,
		Func:        deterministic(EvenSplit),
	},
	{
		Strategy:    StrategyGoldenAngle,
		Description: "Golden angle hue steps for a natural spread",
		EvenOnly:    true,
		Func:        deterministic(GoldenAngle),
	},
	{
		Strategy:    StrategyReferencePalette,
		Description: "Fixed 20-colour reference palette (tab20)",
		EvenOnly:    true,
		Func:        deterministic(ReferencePalette),
	},
	{
		Strategy:    StrategyGreedyLab,
		Description: "Maximally distinct colours by greedy search in CIE Lab",
		EvenOnly:    true,
		Func:        GreedyLab,
	},
}

// aliases maps legacy strategy names onto strategies.
var aliases = map[string]Strategy{
	"simple":       StrategyUniform,
	"even":         StrategyEvenSplit,
	"golden":       StrategyGoldenAngle,
	"matplotlib":   StrategyReferencePalette,
	"tab20":        StrategyReferencePalette,
	"lab_distinct": StrategyGreedyLab,
	"fps_oklab":    StrategyFPSOklab,
}

// Descriptors returns every registered strategy in display order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// ValidStrategies returns the canonical strategy names.
func ValidStrategies() []Strategy {
	out := make([]Strategy, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.Strategy
	}
	return out
}

// Lookup returns the descriptor for a strategy.
func Lookup(s Strategy) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Strategy == s {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ParseStrategy resolves a canonical name or legacy alias, ignoring case.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.TrimSpace(name)
	for _, d := range descriptors {
		if strings.EqualFold(string(d.Strategy), key) {
			return d.Strategy, nil
		}
	}
	if s, ok := aliases[strings.ToLower(key)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown strategy: %s (valid strategies: %v): %w", name, ValidStrategies(), ErrInvalidArgument)
}

// Generate produces n colours with the named strategy.
// No partial result is returned on error.
func Generate(ctx context.Context, s Strategy, n int, opts Options) ([]colour.RGB, error) {
	d, ok := Lookup(s)
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s: %w", s, ErrInvalidArgument)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("generating colours", "strategy", s, "n", n)
	}
	return d.Func(ctx, n, opts)
}

// Validate checks n against the strategy's parity rule without generating.
func (d Descriptor) Validate(n int) error {
	if d.EvenOnly {
		return requireEven(d.Strategy, n)
	}
	return requireNonNegative(d.Strategy, n)
}

// Aliases returns the legacy names that resolve to this strategy, sorted.
func (d Descriptor) Aliases() []string {
	var out []string
	for alias, s := range aliases {
		if s == d.Strategy {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// String returns the canonical strategy name.
func (s Strategy) String() string {
	return string(s)
}
