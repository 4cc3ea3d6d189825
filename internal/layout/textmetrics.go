package layout

import (
	"math"
	"unicode/utf8"
)

// Heuristic text metrics.
//
// Sizing never queries a real font: the average glyph advance is taken as a
// fixed fraction of the font size. This keeps the estimators pure and
// deterministic without a rendering context, at the cost of a little
// accuracy. The constant is part of the layout contract; changing it shifts
// every computed dimension.
const (
	// avgCharWidthFactor approximates the average glyph advance as a
	// fraction of the font size in px.
	avgCharWidthFactor = 0.55

	// maxWrapLines is the wrap budget assumed by min-width estimates: a
	// field may occupy at most this many lines before the column has to
	// widen instead.
	maxWrapLines = 2
)

// CharWidth returns the estimated average character width for a font size.
func CharWidth(fontSize float64) float64 {
	return avgCharWidthFactor * fontSize
}

// TextWidth estimates the unwrapped width of s at the given font size.
func TextWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * CharWidth(fontSize)
}

// WrappedLines estimates how many lines s occupies in a column availWidth
// wide. Empty strings take no lines; a non-positive width yields the wrap
// budget maximum rather than infinity.
func WrappedLines(s string, fontSize, availWidth float64) int {
	if s == "" {
		return 0
	}
	if availWidth <= 0 {
		return maxWrapLines
	}
	lines := int(math.Ceil(TextWidth(s, fontSize) / availWidth))
	if lines < 1 {
		lines = 1
	}
	return lines
}

// MinWrapWidth returns the narrowest column in which s fits within the
// two-line wrap budget.
func MinWrapWidth(s string, fontSize float64) float64 {
	return TextWidth(s, fontSize) / maxWrapLines
}
