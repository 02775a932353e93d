// Package colour provides colour space conversion, perceptual distance and
// palette rendering for distinct colour sets.
package colour

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	lin := linearise(c)
	return 0.2126*lin[0] + 0.7152*lin[1] + 0.0722*lin[2]
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Black and White are the two candidate label colours.
var (
	Black = RGB{R: 0, G: 0, B: 0}
	White = RGB{R: 255, G: 255, B: 255}
)

// ReadableOn returns black or white, whichever contrasts more with bg.
// Used to label colour swatches in previews.
func ReadableOn(bg RGB) RGB {
	if ContrastRatio(bg, Black) >= ContrastRatio(bg, White) {
		return Black
	}
	return White
}
