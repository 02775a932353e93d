// Package util provides shared utility functions used across the application.
package util

import "strings"

// StripHash removes the # prefix from a hex colour string.
func StripHash(hex string) string {
	return strings.TrimPrefix(hex, "#")
}

// StripSelectorPrefix removes a leading # or . from a selector name.
func StripSelectorPrefix(name string) string {
	if name != "" && (name[0] == '#' || name[0] == '.') {
		return name[1:]
	}
	return name
}
