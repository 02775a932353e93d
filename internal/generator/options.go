package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultSkip is the grid step used by the greedy Lab search (16 levels per channel).
	DefaultSkip = 16

	// DefaultNumSamples is the number of random candidates drawn by the FPS sampler.
	DefaultNumSamples = 10000

	// darknessThreshold rejects FPS samples whose channel sum is below it.
	darknessThreshold = 60

	// softLimit is the colour count above which FPS quality starts to degrade.
	softLimit = 40

	// progressEvery controls how often selection progress is logged.
	progressEvery = 5
)

// ProgressFunc is called after each colour is selected by a search strategy.
type ProgressFunc func(selected, total int)

// Options tunes the search-based strategies. The zero value is usable:
// unset fields fall back to their defaults.
type Options struct {
	// Skip is the grid step for the greedy Lab search, in [1,255].
	// Zero selects DefaultSkip; negative values are rejected.
	Skip int

	// NumSamples is the number of random RGB samples drawn by the FPS sampler.
	// Zero selects DefaultNumSamples; negative values are rejected.
	NumSamples int

	// Rand is the random source for sampling. A fixed seed makes output reproducible.
	// When nil a time-seeded source is used.
	Rand *rand.Rand

	// Workers splits each candidate scan across goroutines when greater than 1.
	// Output is identical to the sequential scan.
	Workers int

	// Logger receives structured progress and warning events.
	Logger hclog.Logger

	// Progress is an optional selection callback.
	Progress ProgressFunc
}

// withDefaults returns a copy of o with unset fields filled in.
func (o Options) withDefaults() Options {
	if o.Skip == 0 {
		o.Skip = DefaultSkip
	}
	if o.NumSamples == 0 {
		o.NumSamples = DefaultNumSamples
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	if o.Rand == nil {
		// #nosec G404 -- colour sampling does not need a cryptographic source
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

func (o Options) progress(selected, total int) {
	if o.Progress != nil {
		o.Progress(selected, total)
	}
}

// requireEven rejects odd colour counts for strategies that split into bright and dark halves.
func requireEven(strategy Strategy, n int) error {
	if err := requireNonNegative(strategy, n); err != nil {
		return err
	}
	if n%2 != 0 {
		return fmt.Errorf("%s requires an even colour count, got %d: %w", strategy, n, ErrInvalidArgument)
	}
	return nil
}

func requireNonNegative(strategy Strategy, n int) error {
	if n < 0 {
		return fmt.Errorf("%s: colour count must not be negative, got %d: %w", strategy, n, ErrInvalidArgument)
	}
	return nil
}
