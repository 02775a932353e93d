package generator

import (
	"context"
	"fmt"
	"math"

	"github.com/jmylchreest/distinct/internal/colour"
)

// GreedyLab builds a distinct set by greedy max-min search over a quantised RGB
// grid in CIE Lab. It starts from black and repeatedly adds the grid point whose
// smallest ΔE to the chosen colours is largest. Earlier picks are never revisited.
// Afterwards the second half is darkened, without re-checking distinctness.
//
// Cost is O(n · (256/skip)³); skip trades quality for speed along every axis.
func GreedyLab(ctx context.Context, n int, opts Options) ([]colour.RGB, error) {
	if err := requireEven(StrategyGreedyLab, n); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if opts.Skip <= 0 || opts.Skip >= 256 {
		return nil, fmt.Errorf("%s: skip must be in [1,255] to give at least two grid points per channel, got %d: %w",
			StrategyGreedyLab, opts.Skip, ErrInvalidArgument)
	}
	if n == 0 {
		return []colour.RGB{}, nil
	}

	grid, labs := labGrid(opts.Skip)
	opts.Logger.Debug("greedy lab search", "n", n, "skip", opts.Skip, "candidates", len(grid))

	// minDist[i] is the smallest ΔE from grid point i to any chosen colour.
	minDist := make([]float64, len(grid))
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	colours := make([]colour.RGB, 0, n)
	last := colour.RGBToLab(colour.Black)
	colours = append(colours, colour.Black)
	opts.progress(1, n)

	for len(colours) < n {
		pick, err := argmax(ctx, len(grid), opts.Workers, func(i int) (float64, bool) {
			if d := colour.LabDistance(labs[i], last); d < minDist[i] {
				minDist[i] = d
			}
			return minDist[i], true
		})
		if err != nil {
			return nil, err
		}

		colours = append(colours, grid[pick.index])
		last = labs[pick.index]
		opts.progress(len(colours), n)
		if len(colours)%progressEvery == 0 {
			opts.Logger.Debug("greedy lab progress", "selected", len(colours), "total", n, "min_delta_e", pick.score)
		}
	}

	darkenSecondHalf(colours)
	return colours, nil
}

// labGrid enumerates the grid in r, g, b nesting order with the Lab value of each point.
func labGrid(skip int) ([]colour.RGB, []colour.Lab) {
	steps := (255 / skip) + 1
	grid := make([]colour.RGB, 0, steps*steps*steps)
	for r := 0; r < 256; r += skip {
		for g := 0; g < 256; g += skip {
			for b := 0; b < 256; b += skip {
				grid = append(grid, colour.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
			}
		}
	}

	labs := make([]colour.Lab, len(grid))
	for i, c := range grid {
		labs[i] = colour.RGBToLab(c)
	}
	return grid, labs
}
