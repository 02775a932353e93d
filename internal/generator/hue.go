package generator

import (
	"math"

	"github.com/jmylchreest/distinct/internal/colour"
)

// goldenAngle is 360·φ; taken modulo 360 it spaces successive hues by ~222.5°.
var goldenAngle = 360 * (1 + math.Sqrt(5)) / 2

// Uniform sweeps the hue circle in n equal steps at full saturation and value.
func Uniform(n int) ([]colour.RGB, error) {
	if err := requireNonNegative(StrategyUniform, n); err != nil {
		return nil, err
	}

	colours := make([]colour.RGB, n)
	for i := range n {
		hue := float64(i*360) / float64(n)
		colours[i] = colour.HSVToRGB(hue, 1.0, 1.0)
	}
	return colours, nil
}

// EvenSplit sweeps the hue circle in n equal steps. The first half is at full
// value and the second half at half value. The sweep continues across both
// halves, so a dark colour does not share the hue of any bright one.
func EvenSplit(n int) ([]colour.RGB, error) {
	if err := requireEven(StrategyEvenSplit, n); err != nil {
		return nil, err
	}

	half := n / 2
	colours := make([]colour.RGB, n)
	for i := range n {
		hue := float64(i*360) / float64(n)
		colours[i] = colour.HSVToRGB(hue, 1.0, splitValue(i, half))
	}
	return colours, nil
}

// GoldenAngle steps the hue by the golden angle, giving a low-discrepancy
// sequence where any prefix is well spread. Bright and dark halves as EvenSplit.
func GoldenAngle(n int) ([]colour.RGB, error) {
	if err := requireEven(StrategyGoldenAngle, n); err != nil {
		return nil, err
	}

	half := n / 2
	colours := make([]colour.RGB, n)
	for i := range n {
		hue := math.Mod(float64(i)*goldenAngle, 360)
		colours[i] = colour.HSVToRGB(hue, 1.0, splitValue(i, half))
	}
	return colours, nil
}

func splitValue(i, half int) float64 {
	if i < half {
		return 1.0
	}
	return 0.5
}

// darkenSecondHalf halves the channels of every colour at index >= len/2.
// It runs after selection and does not re-check distinctness.
func darkenSecondHalf(colours []colour.RGB) {
	for i := len(colours) / 2; i < len(colours); i++ {
		colours[i] = colours[i].Scale(0.5)
	}
}
