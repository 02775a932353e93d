// Package colour provides colour space conversion, perceptual distance and
// palette rendering for distinct colour sets.
package colour

import (
	"math"
)

// Lab is a colour in CIE L*a*b* relative to the D65 white point.
// L is in [0,100]; a and b are roughly in [-128,127].
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// OKLab is a colour in Björn Ottosson's OKLab space.
// L is roughly in [0,1]; a and b are roughly in [-0.4,0.4].
type OKLab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// CIE nonlinearity constants.
const (
	labEpsilon = 0.008856
	labKappa   = 7.787
	labOffset  = 16.0 / 116.0
)

// sRGB transfer function thresholds.
const (
	srgbDecodeThreshold = 0.04045
	srgbEncodeThreshold = 0.0031308
)

// srgbToXYZ is the linear sRGB to CIE XYZ matrix.
var srgbToXYZ = [3][3]float64{
	{0.4124, 0.3576, 0.1805},
	{0.2126, 0.7152, 0.0722},
	{0.0193, 0.1192, 0.9505},
}

// xyzToSRGB is the inverse of srgbToXYZ.
var xyzToSRGB = invert3(srgbToXYZ)

// oklabM1 maps linear sRGB to LMS.
var oklabM1 = [3][3]float64{
	{0.4122214708, 0.5363325363, 0.0514459929},
	{0.2119034982, 0.6806995451, 0.1073969566},
	{0.0883024619, 0.2817188376, 0.6299787005},
}

// oklabM2 maps cube-rooted LMS to OKLab.
var oklabM2 = [3][3]float64{
	{0.2104542553, 0.7936177850, -0.0040720468},
	{1.9779984951, -2.4285922050, 0.4505937099},
	{0.0259040371, 0.7827717662, -0.8086757667},
}

var (
	oklabM1Inv = invert3(oklabM1)
	oklabM2Inv = invert3(oklabM2)
)

// SRGBToLinear removes the sRGB gamma from a channel in [0,1].
func SRGBToLinear(v float64) float64 {
	if v > srgbDecodeThreshold {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// LinearToSRGB applies the sRGB gamma to a linear channel value.
func LinearToSRGB(v float64) float64 {
	if v > srgbEncodeThreshold {
		return 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return 12.92 * v
}

// linearise converts 8-bit sRGB into linear light.
func linearise(c RGB) [3]float64 {
	return [3]float64{
		SRGBToLinear(float64(c.R) / 255.0),
		SRGBToLinear(float64(c.G) / 255.0),
		SRGBToLinear(float64(c.B) / 255.0),
	}
}

// encode converts linear light back to 8-bit sRGB.
// Each channel is clipped to [0,255] and rounded to the nearest integer.
func encode(lin [3]float64) RGB {
	ch := func(v float64) uint8 {
		x := LinearToSRGB(v) * 255
		if math.IsNaN(x) {
			return 0
		}
		x = math.Max(0, math.Min(255, x))
		return uint8(math.Round(x))
	}
	return RGB{R: ch(lin[0]), G: ch(lin[1]), B: ch(lin[2])}
}

// RGBToLab converts an sRGB colour to CIE Lab (D65).
func RGBToLab(c RGB) Lab {
	xyz := mul3(srgbToXYZ, linearise(c))

	fx := labF(xyz[0] / whiteX)
	fy := labF(xyz[1] / whiteY)
	fz := labF(xyz[2] / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToRGB converts a CIE Lab colour back to sRGB.
// Out-of-gamut results are clipped per channel.
func LabToRGB(l Lab) RGB {
	fy := (l.L + 16) / 116
	fx := fy + l.A/500
	fz := fy - l.B/200

	xyz := [3]float64{
		labFInv(fx) * whiteX,
		labFInv(fy) * whiteY,
		labFInv(fz) * whiteZ,
	}
	return encode(mul3(xyzToSRGB, xyz))
}

// labF is the CIE cube root with a linear segment near zero.
func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + labOffset
}

// labFInv inverts labF.
func labFInv(f float64) float64 {
	if t := f * f * f; t > labEpsilon {
		return t
	}
	return (f - labOffset) / labKappa
}

// LabDistance returns the CIE76 colour difference (ΔE*ab) between two Lab colours.
func LabDistance(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// RGBToOKLab converts an sRGB colour to OKLab.
func RGBToOKLab(c RGB) OKLab {
	lms := mul3(oklabM1, linearise(c))
	for i := range lms {
		lms[i] = math.Cbrt(lms[i])
	}
	lab := mul3(oklabM2, lms)
	return OKLab{L: lab[0], A: lab[1], B: lab[2]}
}

// OKLabToRGB converts an OKLab colour to sRGB.
// Coordinates outside the sRGB gamut are clipped per channel, never rejected.
func OKLabToRGB(o OKLab) RGB {
	lms := mul3(oklabM2Inv, [3]float64{o.L, o.A, o.B})
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}
	return encode(mul3(oklabM1Inv, lms))
}

// OKLabDistance returns the Euclidean distance between two OKLab colours.
func OKLabDistance(a, b OKLab) float64 {
	return math.Sqrt(OKLabDistanceSq(a, b))
}

// OKLabDistanceSq returns the squared Euclidean distance between two OKLab colours.
// Ordering by squared distance is the same as ordering by distance.
func OKLabDistanceSq(a, b OKLab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}

// MinPairwiseOKLab returns the smallest OKLab distance between any two colours.
// Returns 0 for fewer than two colours.
func MinPairwiseOKLab(colours []RGB) float64 {
	if len(colours) < 2 {
		return 0
	}
	labs := make([]OKLab, len(colours))
	for i, c := range colours {
		labs[i] = RGBToOKLab(c)
	}
	best := math.Inf(1)
	for i := range labs {
		for j := i + 1; j < len(labs); j++ {
			best = math.Min(best, OKLabDistance(labs[i], labs[j]))
		}
	}
	return best
}

// MinPairwiseLab returns the smallest CIE76 ΔE between any two colours.
// Returns 0 for fewer than two colours.
func MinPairwiseLab(colours []RGB) float64 {
	if len(colours) < 2 {
		return 0
	}
	labs := make([]Lab, len(colours))
	for i, c := range colours {
		labs[i] = RGBToLab(c)
	}
	best := math.Inf(1)
	for i := range labs {
		for j := i + 1; j < len(labs); j++ {
			best = math.Min(best, LabDistance(labs[i], labs[j]))
		}
	}
	return best
}

func mul3(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// invert3 returns the inverse of a non-singular 3x3 matrix via the adjugate.
func invert3(m [3][3]float64) [3][3]float64 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02

	return [3][3]float64{
		{c00 / det, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det},
		{c01 / det, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det},
		{c02 / det, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det},
	}
}
