// Package colour provides colour space conversion, perceptual distance and
// palette rendering for distinct colour sets.
package colour

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/image/colornames"
)

type namedColour struct {
	name  string
	oklab OKLab
}

var (
	namedOnce    sync.Once
	namedColours []namedColour
)

// loadNamed converts the SVG 1.1 named colours to OKLab once.
// Names are sorted so equidistant matches resolve the same way every run.
func loadNamed() {
	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names)

	namedColours = make([]namedColour, len(names))
	for i, name := range names {
		namedColours[i] = namedColour{
			name:  name,
			oklab: RGBToOKLab(ToRGB(colornames.Map[name])),
		}
	}
}

// NearestName returns the CSS/SVG colour keyword closest to c in OKLab,
// together with the OKLab distance to it.
func NearestName(c RGB) (string, float64) {
	namedOnce.Do(loadNamed)

	target := RGBToOKLab(c)
	best := ""
	bestDist := math.Inf(1)
	for _, nc := range namedColours {
		if d := OKLabDistanceSq(target, nc.oklab); d < bestDist {
			bestDist = d
			best = nc.name
		}
	}
	return best, math.Sqrt(bestDist)
}
