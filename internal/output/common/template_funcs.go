// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/distinct/internal/colour"
	"github.com/jmylchreest/distinct/internal/util"
)

// TemplateFuncs returns the template functions shared by all output plugins.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Format conversion.
		"rgb":       rgbFunc,
		"rgbValues": rgbValuesFunc,
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"oklab":     oklabFunc,

		// Colour metadata.
		"name":       nameFunc,
		"textColour": textColourFunc,

		// String manipulation.
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
	}
}

func rgbFunc(c colour.RGB) string {
	return c.String()
}

// rgbValuesFunc returns "r, g, b" for use inside custom colour functions.
func rgbValuesFunc(c colour.RGB) string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

func hexFunc(c colour.RGB) string {
	return c.Hex()
}

func hexNoHashFunc(c colour.RGB) string {
	return util.StripHash(c.Hex())
}

// oklabFunc renders the CSS Color 4 oklab() notation.
func oklabFunc(c colour.RGB) string {
	o := colour.RGBToOKLab(c)
	return fmt.Sprintf("oklab(%.4f %.4f %.4f)", o.L, o.A, o.B)
}

// nameFunc returns the nearest CSS colour keyword.
func nameFunc(c colour.RGB) string {
	name, _ := colour.NearestName(c)
	return name
}

// textColourFunc returns black or white as hex, whichever reads better on c.
func textColourFunc(c colour.RGB) string {
	return colour.ReadableOn(c).Hex()
}
