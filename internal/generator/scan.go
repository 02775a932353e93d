package generator

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps goroutine overhead below the per-candidate work.
const minChunk = 256

// cancelCheckEvery is how many candidates a scan visits between context checks.
const cancelCheckEvery = 4096

// scoreFunc scores candidate i. ok=false excludes the candidate from the scan.
// It may update state owned by index i; it must not touch any other index.
type scoreFunc func(i int) (score float64, ok bool)

type best struct {
	index int
	score float64
}

// argmax returns the candidate in [0,n) with the highest score.
// Ties resolve to the lowest index, so a parallel scan selects exactly what a
// sequential one would. Returns index -1 when every candidate is excluded.
func argmax(ctx context.Context, n, workers int, score scoreFunc) (best, error) {
	if err := ctx.Err(); err != nil {
		return best{index: -1}, err
	}

	chunks := workers
	if maxChunks := (n + minChunk - 1) / minChunk; chunks > maxChunks {
		chunks = maxChunks
	}
	if chunks <= 1 {
		return scanRange(ctx, 0, n, score)
	}

	size := (n + chunks - 1) / chunks
	results := make([]best, chunks)

	g, gctx := errgroup.WithContext(ctx)
	for c := range chunks {
		lo := c * size
		hi := min(lo+size, n)
		g.Go(func() error {
			r, err := scanRange(gctx, lo, hi, score)
			results[c] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return best{index: -1}, err
	}

	// Reduce in chunk order; strict > keeps the earliest chunk on ties.
	winner := best{index: -1, score: math.Inf(-1)}
	for _, r := range results {
		if r.index >= 0 && (winner.index < 0 || r.score > winner.score) {
			winner = r
		}
	}
	return winner, nil
}

// scanRange scans [lo,hi), stopping early if ctx is cancelled.
func scanRange(ctx context.Context, lo, hi int, score scoreFunc) (best, error) {
	b := best{index: -1, score: math.Inf(-1)}
	for i := lo; i < hi; i++ {
		if (i-lo)%cancelCheckEvery == cancelCheckEvery-1 {
			if err := ctx.Err(); err != nil {
				return best{index: -1}, err
			}
		}
		s, ok := score(i)
		if !ok {
			continue
		}
		if b.index < 0 || s > b.score {
			b = best{index: i, score: s}
		}
	}
	return b, nil
}
