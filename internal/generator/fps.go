package generator

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/distinct/internal/colour"
)

// candidatePool holds the surviving samples as parallel RGB and OKLab slices.
type candidatePool struct {
	rgb   []colour.RGB
	oklab []colour.OKLab
}

// FPSOklab selects n colours by farthest-point sampling in OKLab.
//
// It draws NumSamples uniformly random RGB colours, drops near-black ones,
// seeds with the most vivid survivor (largest saturation × value) and then
// repeatedly adds the survivor whose smallest OKLab distance to the selection
// is largest. Ties go to the earliest sample. Colours are returned in
// selection order, seed first.
//
// Given the same Options.Rand seed the output is fully deterministic,
// whatever the worker count.
func FPSOklab(ctx context.Context, n int, opts Options) ([]colour.RGB, error) {
	if err := requireNonNegative(StrategyFPSOklab, n); err != nil {
		return nil, err
	}
	if opts.NumSamples < 0 {
		return nil, fmt.Errorf("%s: sample count must be positive, got %d: %w",
			StrategyFPSOklab, opts.NumSamples, ErrInvalidArgument)
	}
	opts = opts.withDefaults()
	if n == 0 {
		return []colour.RGB{}, nil
	}
	if n > softLimit {
		opts.Logger.Warn("colour count above recommended limit, consider raising the sample count",
			"n", n, "limit", softLimit, "samples", opts.NumSamples)
	}

	pool := samplePool(opts)
	opts.Logger.Debug("sampled candidates",
		"requested", humanize.Comma(int64(opts.NumSamples)),
		"kept", humanize.Comma(int64(len(pool.rgb))))

	if len(pool.rgb) == 0 {
		return nil, fmt.Errorf("%s: no candidates left after discarding near-black samples from %d: %w",
			StrategyFPSOklab, opts.NumSamples, ErrInsufficientSamples)
	}
	if n > len(pool.rgb) {
		return nil, fmt.Errorf("%s: requested %d colours but only %d distinct candidates survived from %d samples: %w",
			StrategyFPSOklab, n, len(pool.rgb), opts.NumSamples, ErrInsufficientSamples)
	}

	selected := make([]bool, len(pool.rgb))
	minDist := make([]float64, len(pool.rgb))
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	order := make([]int, 0, n)
	seed := mostVivid(pool.rgb)
	order = append(order, seed)
	selected[seed] = true
	opts.progress(1, n)

	for len(order) < n {
		last := pool.oklab[order[len(order)-1]]
		pick, err := argmax(ctx, len(pool.rgb), opts.Workers, func(i int) (float64, bool) {
			if selected[i] {
				return 0, false
			}
			if d := colour.OKLabDistance(pool.oklab[i], last); d < minDist[i] {
				minDist[i] = d
			}
			return minDist[i], true
		})
		if err != nil {
			return nil, err
		}

		order = append(order, pick.index)
		selected[pick.index] = true
		opts.progress(len(order), n)
		if len(order)%progressEvery == 0 {
			opts.Logger.Debug("fps progress", "selected", len(order), "total", n, "min_distance", pick.score)
		}
	}

	colours := make([]colour.RGB, len(order))
	for i, idx := range order {
		colours[i] = pool.rgb[idx]
	}
	opts.Logger.Debug("fps complete", "colours", len(colours))
	return colours, nil
}

// samplePool draws the random candidates. Near-black samples are rejected and
// repeats of an already kept colour are dropped, keeping the first occurrence.
// A repeat can never win a selection round before its original does, so
// dropping it only matters once the pool is exhausted.
func samplePool(opts Options) candidatePool {
	pool := candidatePool{
		rgb:   make([]colour.RGB, 0, opts.NumSamples),
		oklab: make([]colour.OKLab, 0, opts.NumSamples),
	}
	seen := make(map[colour.RGB]struct{}, opts.NumSamples)

	for range opts.NumSamples {
		c := colour.RGB{
			R: uint8(opts.Rand.Intn(256)),
			G: uint8(opts.Rand.Intn(256)),
			B: uint8(opts.Rand.Intn(256)),
		}
		if c.Sum() < darknessThreshold {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		pool.rgb = append(pool.rgb, c)
		pool.oklab = append(pool.oklab, colour.RGBToOKLab(c))
	}
	return pool
}

// mostVivid returns the index of the colour with the largest saturation × value.
// The first such colour wins ties.
func mostVivid(colours []colour.RGB) int {
	bestIdx := 0
	bestScore := -1.0
	for i, c := range colours {
		if v := c.Vividness(); v > bestScore {
			bestScore = v
			bestIdx = i
		}
	}
	return bestIdx
}
