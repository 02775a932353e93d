// Package colour provides colour space conversion, perceptual distance and
// palette rendering for distinct colour sets.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
// This is the form written into CSS rules.
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Scale multiplies every channel by factor, truncating towards zero.
// The result is clamped to [0,255].
func (rgb RGB) Scale(factor float64) RGB {
	return RGB{
		R: clampChannel(float64(rgb.R) * factor),
		G: clampChannel(float64(rgb.G) * factor),
		B: clampChannel(float64(rgb.B) * factor),
	}
}

// Sum returns the sum of the three channels.
func (rgb RGB) Sum() int {
	return int(rgb.R) + int(rgb.G) + int(rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// clampChannel truncates v to an integer channel value within [0,255].
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Palette is an ordered set of colours produced by one generation call.
type Palette struct {
	Colours []RGB
	// Method is the human-readable description of the strategy that produced it.
	Method string
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colours []RGB, method string) *Palette {
	return &Palette{
		Colours: colours,
		Method:  method,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
	OKLab OKLab  `json:"oklab"`
	Name  string `json:"nearest_name,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Method         string       `json:"method,omitempty"`
	Count          int          `json:"count"`
	MinOKLabDelta  float64      `json:"min_oklab_delta"`
	MinLabDeltaE76 float64      `json:"min_lab_delta_e76"`
	Colours        []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		name, _ := NearestName(c)
		colours[i] = ColourJSON{
			Hex:   c.Hex(),
			RGB:   c,
			OKLab: RGBToOKLab(c),
			Name:  name,
		}
	}

	paletteJSON := PaletteJSON{
		Method:         p.Method,
		Count:          len(p.Colours),
		MinOKLabDelta:  MinPairwiseOKLab(p.Colours),
		MinLabDeltaE76: MinPairwiseLab(p.Colours),
		Colours:        colours,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		fmt.Fprintf(&b, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return b.String()
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.Colours) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}
