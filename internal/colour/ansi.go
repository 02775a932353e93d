// Package colour provides colour space conversion, perceptual distance and
// palette rendering for distinct colour sets.
package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour preview with text overlay.
// The text colour is chosen to have good contrast with the background.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := ReadableOn(c)
	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	// Pad or truncate text to fit width.
	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgColour + fgColour + displayText + ansiReset
}

// FormatColourWithPreview formats a colour with its preview and hex code.
func FormatColourWithPreview(rgb RGB, width int) string {
	return fmt.Sprintf("%s %s", ColourPreview(rgb, width), rgb.Hex())
}

// FormatColourWithLabel formats a colour with a label and preview.
func FormatColourWithLabel(rgb RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", ColourPreview(rgb, width), label, rgb.Hex())
}

// StringWithPreview renders the palette one colour per line.
// With preview enabled each line starts with an ANSI swatch.
func (p *Palette) StringWithPreview(preview bool) string {
	var b strings.Builder
	for i, c := range p.Colours {
		name, _ := NearestName(c)
		if preview {
			fmt.Fprintf(&b, "%s  %3d  %s  %-18s  %s\n", ColourPreview(c, defaultWidth), i+1, c.Hex(), c.String(), name)
		} else {
			fmt.Fprintf(&b, "%3d  %s  %-18s  %s\n", i+1, c.Hex(), c.String(), name)
		}
	}
	return b.String()
}
