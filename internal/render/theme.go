package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme carries the resolved style-layer inputs: colors, the glass-panel
// translucency, and the backdrop blur radius applied to card chrome. The
// renderer and collector only read it.
type Theme struct {
	Background color.NRGBA
	Panel      color.NRGBA
	Text       color.NRGBA
	Muted      color.NRGBA
	GridLine   color.NRGBA

	// CardColors maps a class type key to the card fill. Unknown keys fall
	// back to DefaultCard.
	CardColors  map[string]color.NRGBA
	DefaultCard color.NRGBA

	// CardBlur is the backdrop blur radius in logical px for glass panels.
	CardBlur float64

	// WallpaperPath, if set, is drawn behind everything, scaled to cover.
	WallpaperPath string
}

func DefaultTheme() Theme {
	return Theme{
		Background:  color.NRGBA{R: 0x1e, G: 0x24, B: 0x30, A: 0xff},
		Panel:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x2e},
		Text:        color.NRGBA{R: 0xf5, G: 0xf7, B: 0xfa, A: 0xff},
		Muted:       color.NRGBA{R: 0xc3, G: 0xc9, B: 0xd4, A: 0xff},
		GridLine:    color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x20},
		DefaultCard: color.NRGBA{R: 0x4f, G: 0x7c, B: 0xc9, A: 0xa0},
		CardColors: map[string]color.NRGBA{
			"lecture":  {R: 0x4f, G: 0x7c, B: 0xc9, A: 0xa0},
			"lab":      {R: 0x4c, G: 0xa8, B: 0x8b, A: 0xa0},
			"seminar":  {R: 0xb3, G: 0x7b, B: 0xc4, A: 0xa0},
			"exam":     {R: 0xd1, G: 0x6a, B: 0x5f, A: 0xa0},
			"tutorial": {R: 0xd9, G: 0xa4, B: 0x41, A: 0xa0},
		},
		CardBlur: 16,
	}
}

// CardColor resolves the fill for a class type key.
func (t Theme) CardColor(classType string) color.NRGBA {
	if c, ok := t.CardColors[strings.ToLower(classType)]; ok {
		return c
	}
	return t.DefaultCard
}

// ThemeOverrides are the user-facing style knobs, colors as hex strings.
// Empty or malformed values leave the default in place; a styling tool
// degrades rather than refuses.
type ThemeOverrides struct {
	Background string
	Panel      string
	Text       string
	CardColors map[string]string
	CardBlur   float64
	Wallpaper  string
}

// ResolveTheme applies overrides on top of the default theme.
func ResolveTheme(o ThemeOverrides) Theme {
	th := DefaultTheme()
	if c, err := ParseHex(o.Background); err == nil && o.Background != "" {
		th.Background = c
	}
	if c, err := ParseHex(o.Panel); err == nil && o.Panel != "" {
		th.Panel = c
	}
	if c, err := ParseHex(o.Text); err == nil && o.Text != "" {
		th.Text = c
	}
	for k, v := range o.CardColors {
		if c, err := ParseHex(v); err == nil {
			th.CardColors[strings.ToLower(k)] = c
		}
	}
	if o.CardBlur > 0 {
		th.CardBlur = o.CardBlur
	}
	th.WallpaperPath = o.Wallpaper
	return th
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var r, g, b, a uint8
	a = 0xff
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("render: bad hex color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("render: bad hex color %q: %w", s, err)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("render: bad hex color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
