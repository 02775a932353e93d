// Package colour provides colour space conversion, perceptual distance and
// palette rendering for distinct colour sets.
package colour

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSVToRGB converts HSV to RGB.
// h is hue in degrees (any value, wrapped into [0,360)), s and v are in [0,1].
// The sector arithmetic follows the classic hexcone formulation step for step,
// and channels are truncated, not rounded, so v=0.5 yields 127 rather than 128.
func HSVToRGB(h, s, v float64) RGB {
	if s == 0 {
		c := clampChannel(v * 255)
		return RGB{R: c, G: c, B: c}
	}

	h6 := float64(wrapHue(h)/360) * 6
	sector := int(h6)
	f := h6 - float64(sector)
	// Explicit conversions prevent fused multiply-add.
	p := v * (1 - s)
	q := v * (1 - float64(s*f))
	t := v * (1 - float64(s*(1-f)))

	var r, g, b float64
	switch sector % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{R: clampChannel(r * 255), G: clampChannel(g * 255), B: clampChannel(b * 255)}
}

// HSV returns hue (0-360), saturation (0-1) and value (0-1) of the colour.
func (rgb RGB) HSV() (h, s, v float64) {
	return rgb.colorful().Hsv()
}

// Vividness is saturation multiplied by value; the most vivid colour is
// fully saturated at full brightness.
func (rgb RGB) Vividness() float64 {
	_, s, v := rgb.HSV()
	return s * v
}

func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// wrapHue maps any angle into [0,360).
func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}
