package scene

import (
	"math"
	"strconv"
	"strings"
)

// ParseBlurRadius extracts the blur radius in px from a backdrop filter
// string like "blur(24px)". Anything unparsable yields 0: an export must
// never fail because one style property was malformed, so bad values simply
// mean "no effect".
func ParseBlurRadius(filter string) float64 {
	s := strings.ToLower(strings.TrimSpace(filter))
	if !strings.HasPrefix(s, "blur(") || !strings.HasSuffix(s, ")") {
		return 0
	}

	inner := strings.TrimSpace(s[len("blur(") : len(s)-1])
	inner = strings.TrimSuffix(inner, "px")
	inner = strings.TrimSpace(inner)

	r, err := strconv.ParseFloat(inner, 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return 0
	}
	return r
}
