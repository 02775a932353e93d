package generator

import (
	"github.com/jmylchreest/distinct/internal/colour"
)

// referencePalette is the 20-colour categorical palette commonly known as tab20.
// Values must not change: generated stylesheets depend on them.
var referencePalette = [20]colour.RGB{
	{R: 0x1f, G: 0x77, B: 0xb4},
	{R: 0xae, G: 0xc7, B: 0xe8},
	{R: 0xff, G: 0x7f, B: 0x0e},
	{R: 0xff, G: 0xbb, B: 0x78},
	{R: 0x2c, G: 0xa0, B: 0x2c},
	{R: 0x98, G: 0xdf, B: 0x8a},
	{R: 0xd6, G: 0x27, B: 0x28},
	{R: 0xff, G: 0x98, B: 0x96},
	{R: 0x94, G: 0x67, B: 0xbd},
	{R: 0xc5, G: 0xb0, B: 0xd5},
	{R: 0x8c, G: 0x56, B: 0x4b},
	{R: 0xc4, G: 0x9c, B: 0x94},
	{R: 0xe3, G: 0x77, B: 0xc2},
	{R: 0xf7, G: 0xb6, B: 0xd2},
	{R: 0x7f, G: 0x7f, B: 0x7f},
	{R: 0xc7, G: 0xc7, B: 0xc7},
	{R: 0xbc, G: 0xbd, B: 0x22},
	{R: 0xdb, G: 0xdb, B: 0x8d},
	{R: 0x17, G: 0xbe, B: 0xcf},
	{R: 0x9e, G: 0xda, B: 0xe5},
}

// ReferencePalette samples n evenly spaced positions along the reference
// palette, from its first entry to its last. The second half is darkened by
// halving every channel. Once n exceeds 20 entries repeat.
func ReferencePalette(n int) ([]colour.RGB, error) {
	if err := requireEven(StrategyReferencePalette, n); err != nil {
		return nil, err
	}

	colours := make([]colour.RGB, n)
	for i := range n {
		colours[i] = referencePalette[referenceIndex(i, n)]
	}
	darkenSecondHalf(colours)
	return colours, nil
}

// referenceIndex maps position i of n onto the palette: the position is
// i/(n-1) in [0,1], scaled by the palette length and truncated, with 1.0
// mapping to the last entry.
func referenceIndex(i, n int) int {
	if n < 2 {
		return 0
	}
	size := len(referencePalette)
	x := float64(i) * (1.0 / float64(n-1))
	if i == n-1 {
		x = 1.0
	}
	idx := int(x * float64(size))
	if idx >= size {
		idx = size - 1
	}
	return idx
}
