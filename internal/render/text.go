package render

import (
	"strings"
	"unicode/utf8"
)

// wrapText word-wraps s into lines of at most maxChars runes. The character
// budget comes from the same width heuristic the layout estimators use, so
// rendered wrapping agrees with the sizes the solver computed. maxLines <= 0
// means a single line; overflow is ellipsized.
func wrapText(s string, maxChars, maxLines int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	if maxLines < 1 {
		maxLines = 1
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := ""
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= maxChars:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	lines = append(lines, cur)

	// Hard-break any single word longer than the budget.
	for i := 0; i < len(lines); i++ {
		if utf8.RuneCountInString(lines[i]) > maxChars {
			r := []rune(lines[i])
			rest := string(r[maxChars:])
			lines[i] = string(r[:maxChars])
			lines = append(lines[:i+1], append([]string{rest}, lines[i+1:]...)...)
		}
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = ellipsize(lines[maxLines-1], maxChars)
	}
	return lines
}

func ellipsize(s string, maxChars int) string {
	r := []rune(s)
	if len(r)+1 <= maxChars {
		return s + "…"
	}
	if len(r) == 0 {
		return "…"
	}
	return string(r[:len(r)-1]) + "…"
}
