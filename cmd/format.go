package cmd

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// padToWidth pads or truncates text to exactly the specified display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		if width <= runewidth.StringWidth(ellipsis) {
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Truncate can stop short of the target on wide runes
		result := runewidth.Truncate(text, width, ellipsis)
		if w := runewidth.StringWidth(result); w < width {
			return result + strings.Repeat(" ", width-w)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}

// columnWidth returns the display width of the widest value, capped at max
func columnWidth(values []string, header string, max int) int {
	width := runewidth.StringWidth(header)
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > width {
			width = w
		}
	}
	if max > 0 && width > max {
		width = max
	}
	return width
}
