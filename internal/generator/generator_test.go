package generator

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/distinct/internal/colour"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestParityEnforcement(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		run  func() ([]colour.RGB, error)
	}{
		{name: "EvenSplit(3)", run: func() ([]colour.RGB, error) { return EvenSplit(3) }},
		{name: "GoldenAngle(5)", run: func() ([]colour.RGB, error) { return GoldenAngle(5) }},
		{name: "ReferencePalette(7)", run: func() ([]colour.RGB, error) { return ReferencePalette(7) }},
		{name: "GreedyLab(9)", run: func() ([]colour.RGB, error) { return GreedyLab(ctx, 9, Options{}) }},
		{name: "Uniform(-1)", run: func() ([]colour.RGB, error) { return Uniform(-1) }},
		{name: "FPSOklab(-2)", run: func() ([]colour.RGB, error) { return FPSOklab(ctx, -2, Options{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("error = %v, want ErrInvalidArgument", err)
			}
			if got != nil {
				t.Errorf("got partial result %v on error", got)
			}
		})
	}
}

// hueDistance is the shortest angular distance between two hues, in [0,180].
func hueDistance(h1, h2 float64) float64 {
	d := math.Mod(math.Abs(h1-h2), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestHueSweepValues(t *testing.T) {
	tests := []struct {
		name string
		gen  func() ([]colour.RGB, error)
		want []colour.RGB
	}{
		{
			name: "Uniform(10)",
			gen:  func() ([]colour.RGB, error) { return Uniform(10) },
			want: []colour.RGB{
				{R: 255, G: 0, B: 0}, {R: 255, G: 153, B: 0}, {R: 203, G: 255, B: 0}, {R: 51, G: 255, B: 0}, {R: 0, G: 255, B: 102},
				{R: 0, G: 255, B: 255}, {R: 0, G: 102, B: 255}, {R: 50, G: 0, B: 255}, {R: 204, G: 0, B: 255}, {R: 255, G: 0, B: 152},
			},
		},
		{
			name: "EvenSplit(14)",
			gen:  func() ([]colour.RGB, error) { return EvenSplit(14) },
			want: []colour.RGB{
				{R: 255, G: 0, B: 0}, {R: 255, G: 109, B: 0}, {R: 255, G: 218, B: 0}, {R: 182, G: 255, B: 0}, {R: 72, G: 255, B: 0},
				{R: 0, G: 255, B: 36}, {R: 0, G: 255, B: 145}, {R: 0, G: 127, B: 127}, {R: 0, G: 72, B: 127}, {R: 0, G: 18, B: 127},
				{R: 36, G: 0, B: 127}, {R: 91, G: 0, B: 127}, {R: 127, G: 0, B: 109}, {R: 127, G: 0, B: 54},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.gen()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("colours mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUniformHueSpacing(t *testing.T) {
	colours, err := Uniform(4)
	if err != nil {
		t.Fatalf("Uniform(4) error = %v", err)
	}
	if len(colours) != 4 {
		t.Fatalf("Uniform(4) returned %d colours", len(colours))
	}

	for i, want := range []float64{0, 90, 180, 270} {
		h, s, v := colours[i].HSV()
		if hueDistance(h, want) > 1 {
			t.Errorf("colour %d hue = %.2f, want %.0f ±1", i, h, want)
		}
		if math.Abs(s-1) > 1e-9 || math.Abs(v-1) > 1e-9 {
			t.Errorf("colour %d s,v = %.3f,%.3f, want 1,1", i, s, v)
		}
	}
}

func TestUniformEmpty(t *testing.T) {
	colours, err := Uniform(0)
	if err != nil {
		t.Fatalf("Uniform(0) error = %v", err)
	}
	if len(colours) != 0 {
		t.Errorf("Uniform(0) = %v, want empty", colours)
	}
}

func TestBrightDarkSplit(t *testing.T) {
	tests := []struct {
		name string
		gen  func(int) ([]colour.RGB, error)
	}{
		{name: "EvenSplit", gen: EvenSplit},
		{name: "GoldenAngle", gen: GoldenAngle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colours, err := tt.gen(4)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			for i, c := range colours {
				_, _, v := c.HSV()
				want := 1.0
				if i >= 2 {
					want = 0.5
				}
				if math.Abs(v-want) > 0.01 {
					t.Errorf("colour %d (%v) value = %.3f, want %.1f", i, c, v, want)
				}
			}
		})
	}
}

func TestEvenSplitHuesContinueAcrossHalves(t *testing.T) {
	colours, err := EvenSplit(4)
	if err != nil {
		t.Fatalf("EvenSplit(4) error = %v", err)
	}
	h, _, _ := colours[2].HSV()
	if hueDistance(h, 180) > 1 {
		t.Errorf("dark colour 2 hue = %.2f, want 180", h)
	}
}

func TestGoldenAngleHues(t *testing.T) {
	colours, err := GoldenAngle(6)
	if err != nil {
		t.Fatalf("GoldenAngle(6) error = %v", err)
	}
	for i, c := range colours {
		want := math.Mod(float64(i)*goldenAngle, 360)
		h, _, _ := c.HSV()
		if hueDistance(h, want) > 1.5 {
			t.Errorf("colour %d hue = %.2f, want %.2f", i, h, want)
		}
	}
}

func TestReferencePalette(t *testing.T) {
	tests := []struct {
		n    int
		want []colour.RGB
	}{
		{n: 0, want: []colour.RGB{}},
		{n: 2, want: []colour.RGB{{R: 31, G: 119, B: 180}, {R: 79, G: 109, B: 114}}},
		{n: 4, want: []colour.RGB{{R: 31, G: 119, B: 180}, {R: 214, G: 39, B: 40}, {R: 123, G: 91, B: 105}, {R: 79, G: 109, B: 114}}},
	}

	for _, tt := range tests {
		got, err := ReferencePalette(tt.n)
		if err != nil {
			t.Fatalf("ReferencePalette(%d) error = %v", tt.n, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ReferencePalette(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestReferenceIndexCoversPalette(t *testing.T) {
	if got := referenceIndex(39, 40); got != 19 {
		t.Errorf("last index = %d, want 19", got)
	}
	if got := referenceIndex(0, 40); got != 0 {
		t.Errorf("first index = %d, want 0", got)
	}
	prev := -1
	for i := range 20 {
		idx := referenceIndex(i, 20)
		if idx < prev {
			t.Fatalf("index went backwards at %d: %d < %d", i, idx, prev)
		}
		prev = idx
	}
}

func TestGreedyLabMaxMin(t *testing.T) {
	colours, err := GreedyLab(context.Background(), 4, Options{Skip: 32})
	if err != nil {
		t.Fatalf("GreedyLab error = %v", err)
	}
	if len(colours) != 4 {
		t.Fatalf("GreedyLab returned %d colours, want 4", len(colours))
	}
	if colours[0] != colour.Black {
		t.Errorf("first colour = %v, want black", colours[0])
	}

	grid, labs := labGrid(32)
	black := colour.RGBToLab(colour.Black)

	// The second pick is the grid point farthest from black.
	pairDist := colour.LabDistance(black, colour.RGBToLab(colours[1]))
	for i := range grid {
		if d := colour.LabDistance(black, labs[i]); d > pairDist+1e-9 {
			t.Fatalf("grid point %v is farther from black (%.2f) than pick %v (%.2f)", grid[i], d, colours[1], pairDist)
		}
	}

	// And it beats the typical distance between random grid points.
	rng := seeded(7)
	var total float64
	const samples = 2000
	for range samples {
		a, b := labs[rng.Intn(len(labs))], labs[rng.Intn(len(labs))]
		total += colour.LabDistance(a, b)
	}
	if mean := total / samples; pairDist < mean {
		t.Errorf("selected pair distance %.2f below random baseline %.2f", pairDist, mean)
	}
}

func TestGreedyLabDarkensSecondHalf(t *testing.T) {
	colours, err := GreedyLab(context.Background(), 4, Options{Skip: 64})
	if err != nil {
		t.Fatalf("GreedyLab error = %v", err)
	}
	for i := 2; i < 4; i++ {
		c := colours[i]
		if c.R > 127 || c.G > 127 || c.B > 127 {
			t.Errorf("colour %d = %v, want every channel halved", i, c)
		}
	}
}

func TestZeroOptionsSelectDefaults(t *testing.T) {
	ctx := context.Background()

	zero, err := GreedyLab(ctx, 4, Options{Skip: 0})
	if err != nil {
		t.Fatalf("GreedyLab with zero skip error = %v", err)
	}
	def, err := GreedyLab(ctx, 4, Options{Skip: DefaultSkip})
	if err != nil {
		t.Fatalf("GreedyLab with default skip error = %v", err)
	}
	if diff := cmp.Diff(def, zero); diff != "" {
		t.Errorf("zero skip differs from DefaultSkip (-default +zero):\n%s", diff)
	}

	zero, err = FPSOklab(ctx, 4, Options{NumSamples: 0, Rand: seeded(4)})
	if err != nil {
		t.Fatalf("FPSOklab with zero samples error = %v", err)
	}
	def, err = FPSOklab(ctx, 4, Options{NumSamples: DefaultNumSamples, Rand: seeded(4)})
	if err != nil {
		t.Fatalf("FPSOklab with default samples error = %v", err)
	}
	if diff := cmp.Diff(def, zero); diff != "" {
		t.Errorf("zero samples differs from DefaultNumSamples (-default +zero):\n%s", diff)
	}
}

func TestGreedyLabInvalidSkip(t *testing.T) {
	for _, skip := range []int{-1, 256, 1000} {
		_, err := GreedyLab(context.Background(), 2, Options{Skip: skip})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("skip %d: error = %v, want ErrInvalidArgument", skip, err)
		}
	}
}

func TestGreedyLabParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	seq, err := GreedyLab(ctx, 6, Options{Skip: 16, Workers: 1})
	if err != nil {
		t.Fatalf("sequential error = %v", err)
	}
	par, err := GreedyLab(ctx, 6, Options{Skip: 16, Workers: 4})
	if err != nil {
		t.Fatalf("parallel error = %v", err)
	}
	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel result differs (-seq +par):\n%s", diff)
	}
}

func TestFPSDeterminism(t *testing.T) {
	ctx := context.Background()
	run := func(seed int64) []colour.RGB {
		t.Helper()
		colours, err := FPSOklab(ctx, 10, Options{NumSamples: 500, Rand: seeded(seed)})
		if err != nil {
			t.Fatalf("FPSOklab(seed %d) error = %v", seed, err)
		}
		if len(colours) != 10 {
			t.Fatalf("FPSOklab returned %d colours, want 10", len(colours))
		}
		return colours
	}

	first, second := run(42), run(42)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed gave different output (-first +second):\n%s", diff)
	}
	if cmp.Equal(first, run(43)) {
		t.Error("different seeds gave identical output")
	}
}

// naiveFPS is the direct O(n²·m) formulation, used as an oracle.
func naiveFPS(pool candidatePool, n int) []colour.RGB {
	order := []int{mostVivid(pool.rgb)}
	for len(order) < n {
		bestIdx, bestDist := -1, math.Inf(-1)
		for i := range pool.oklab {
			taken := false
			minDist := math.Inf(1)
			for _, s := range order {
				if s == i {
					taken = true
					break
				}
				minDist = math.Min(minDist, colour.OKLabDistance(pool.oklab[i], pool.oklab[s]))
			}
			if !taken && minDist > bestDist {
				bestIdx, bestDist = i, minDist
			}
		}
		order = append(order, bestIdx)
	}
	out := make([]colour.RGB, len(order))
	for i, idx := range order {
		out[i] = pool.rgb[idx]
	}
	return out
}

func TestFPSMatchesNaiveSearch(t *testing.T) {
	opts := Options{NumSamples: 800, Rand: seeded(11)}
	want := naiveFPS(samplePool(opts.withDefaults()), 12)

	opts.Rand = seeded(11)
	got, err := FPSOklab(context.Background(), 12, opts)
	if err != nil {
		t.Fatalf("FPSOklab error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incremental FPS differs from naive search (-want +got):\n%s", diff)
	}
}

func TestFPSParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	seq, err := FPSOklab(ctx, 20, Options{NumSamples: 4000, Rand: seeded(5), Workers: 1})
	if err != nil {
		t.Fatalf("sequential error = %v", err)
	}
	par, err := FPSOklab(ctx, 20, Options{NumSamples: 4000, Rand: seeded(5), Workers: 8})
	if err != nil {
		t.Fatalf("parallel error = %v", err)
	}
	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel result differs (-seq +par):\n%s", diff)
	}
}

func TestFPSSeedAndFilter(t *testing.T) {
	opts := Options{NumSamples: 1000, Rand: seeded(3)}
	pool := samplePool(opts.withDefaults())

	colours, err := FPSOklab(context.Background(), 8, Options{NumSamples: 1000, Rand: seeded(3)})
	if err != nil {
		t.Fatalf("FPSOklab error = %v", err)
	}
	if colours[0] != pool.rgb[mostVivid(pool.rgb)] {
		t.Errorf("seed = %v, want most vivid sample %v", colours[0], pool.rgb[mostVivid(pool.rgb)])
	}

	seen := make(map[colour.RGB]bool)
	for _, c := range colours {
		if c.Sum() < darknessThreshold {
			t.Errorf("near-black colour %v survived the filter", c)
		}
		if seen[c] {
			t.Errorf("duplicate colour %v", c)
		}
		seen[c] = true
	}
}

func TestFPSInsufficientSamples(t *testing.T) {
	_, err := FPSOklab(context.Background(), 50, Options{NumSamples: 10, Rand: seeded(1)})
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("error = %v, want ErrInsufficientSamples", err)
	}
}

func TestFPSInvalidSampleCount(t *testing.T) {
	_, err := FPSOklab(context.Background(), 4, Options{NumSamples: -5})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestFPSZeroColours(t *testing.T) {
	colours, err := FPSOklab(context.Background(), 0, Options{Rand: seeded(1)})
	if err != nil || len(colours) != 0 {
		t.Fatalf("FPSOklab(0) = %v, %v; want empty, nil", colours, err)
	}
}

func TestFPSWarnsAboveSoftLimit(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Warn})

	colours, err := FPSOklab(context.Background(), softLimit+2, Options{NumSamples: 2000, Rand: seeded(9), Logger: logger})
	if err != nil {
		t.Fatalf("FPSOklab error = %v", err)
	}
	if len(colours) != softLimit+2 {
		t.Errorf("got %d colours, want %d", len(colours), softLimit+2)
	}
	if !strings.Contains(buf.String(), "recommended limit") {
		t.Errorf("expected a warning, log was %q", buf.String())
	}
}

func TestFPSProgressAndCancel(t *testing.T) {
	var calls []int
	_, err := FPSOklab(context.Background(), 6, Options{
		NumSamples: 500,
		Rand:       seeded(2),
		Progress:   func(selected, total int) { calls = append(calls, selected) },
	})
	if err != nil {
		t.Fatalf("FPSOklab error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, calls); diff != "" {
		t.Errorf("progress calls mismatch (-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FPSOklab(ctx, 6, Options{NumSamples: 500, Rand: seeded(2)}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context error = %v, want context.Canceled", err)
	}
}

func TestArgmaxTieBreak(t *testing.T) {
	scores := make([]float64, 3000)
	scores[700] = 5
	scores[2500] = 5
	scores[10] = 4

	for _, workers := range []int{1, 3, 8} {
		got, err := argmax(context.Background(), len(scores), workers, func(i int) (float64, bool) {
			return scores[i], i != 700 || workers < 0
		})
		if err != nil {
			t.Fatalf("argmax error = %v", err)
		}
		if got.index != 2500 {
			t.Errorf("workers=%d: index = %d, want 2500", workers, got.index)
		}

		got, _ = argmax(context.Background(), len(scores), workers, func(i int) (float64, bool) {
			return scores[i], true
		})
		if got.index != 700 {
			t.Errorf("workers=%d: index = %d, want lowest tied index 700", workers, got.index)
		}
	}

	none, _ := argmax(context.Background(), 5, 1, func(int) (float64, bool) { return 0, false })
	if none.index != -1 {
		t.Errorf("all excluded: index = %d, want -1", none.index)
	}
}

func TestArgmaxCancelMidScan(t *testing.T) {
	const n = 50000
	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int64
		_, err := argmax(ctx, n, workers, func(i int) (float64, bool) {
			calls.Add(1)
			if i == 100 {
				cancel()
			}
			return float64(i), true
		})
		cancel()
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: error = %v, want context.Canceled", workers, err)
		}
		if got := calls.Load(); got >= n {
			t.Errorf("workers=%d: scored %d candidates, want the scan to stop early", workers, got)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "fpsOklab", want: StrategyFPSOklab},
		{in: "FPSOKLAB", want: StrategyFPSOklab},
		{in: "fps_oklab", want: StrategyFPSOklab},
		{in: "simple", want: StrategyUniform},
		{in: "even", want: StrategyEvenSplit},
		{in: "golden", want: StrategyGoldenAngle},
		{in: "matplotlib", want: StrategyReferencePalette},
		{in: "lab_distinct", want: StrategyGreedyLab},
		{in: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateDispatch(t *testing.T) {
	ctx := context.Background()
	for _, d := range Descriptors() {
		t.Run(string(d.Strategy), func(t *testing.T) {
			colours, err := Generate(ctx, d.Strategy, 4, Options{Skip: 64, NumSamples: 300, Rand: seeded(1)})
			if err != nil {
				t.Fatalf("Generate error = %v", err)
			}
			if len(colours) != 4 {
				t.Errorf("Generate returned %d colours, want 4", len(colours))
			}
			if d.Description == "" {
				t.Error("descriptor has no description")
			}
			if err := d.Validate(3); d.EvenOnly && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate(3) = %v, want ErrInvalidArgument for even-only strategy", err)
			}
		})
	}

	ref, _ := Lookup(StrategyReferencePalette)
	if diff := cmp.Diff([]string{"matplotlib", "tab20"}, ref.Aliases()); diff != "" {
		t.Errorf("Aliases mismatch (-want +got):\n%s", diff)
	}

	if _, err := Generate(ctx, Strategy("nope"), 2, Options{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown strategy error = %v, want ErrInvalidArgument", err)
	}
}
