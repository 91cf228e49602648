package ui

import (
	"math"
	"strings"
)

// ProgressBar draws fraction (clamped to [0, 1]) as a bar of width cells,
// filled from the left. It stands in for the countdown ring of a GUI.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(math.Ceil(fraction * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// BarWidth picks a bar width for a terminal of the given column count.
func BarWidth(columns int) int {
	w := columns / 3
	switch {
	case w < 10:
		return 10
	case w > 30:
		return 30
	default:
		return w
	}
}
