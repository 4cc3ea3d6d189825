package model

// FieldToggles controls which optional content fields are rendered on every
// card. Per-entry suppression (Entry.Hidden) is applied on top.
type FieldToggles struct {
	ClassType bool `json:"class_type" yaml:"class_type"`
	Time      bool `json:"time" yaml:"time"`
	Location  bool `json:"location" yaml:"location"`
	Notes     bool `json:"notes" yaml:"notes"`
}

// DefaultFieldToggles shows everything except notes, which tend to crowd
// small cards.
func DefaultFieldToggles() FieldToggles {
	return FieldToggles{ClassType: true, Time: true, Location: true, Notes: false}
}

// LayoutConfig carries the style parameters that affect sizing. It is an
// immutable input to the solver and estimators; recompute on every change.
type LayoutConfig struct {
	// FontScale multiplies all font sizes (1.0 = default).
	FontScale float64

	// TitleFontSize / DetailFontSize are unscaled base sizes in logical px.
	TitleFontSize  float64
	DetailFontSize float64

	// Compact tightens paddings and line spacing.
	Compact bool

	Show FieldToggles

	// AspectSlider selects the target export shape: 0.0 is wide landscape
	// (16:9), 1.0 is tall portrait (9:16).
	AspectSlider float64
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		FontScale:      1.0,
		TitleFontSize:  14,
		DetailFontSize: 11,
		Show:           DefaultFieldToggles(),
		AspectSlider:   0.5,
	}
}

// TitleSize returns the effective title font size in logical px.
func (c LayoutConfig) TitleSize() float64 {
	s := c.TitleFontSize * c.FontScale
	if c.Compact {
		s *= 0.9
	}
	return s
}

// DetailSize returns the effective font size for secondary fields.
func (c LayoutConfig) DetailSize() float64 {
	s := c.DetailFontSize * c.FontScale
	if c.Compact {
		s *= 0.9
	}
	return s
}

// GridDimensions is the solver output: the full canvas size plus the size of
// the hour grid inside it (canvas minus header/footer/time-label chrome).
//
// Invariant: the canvas never drops below the content-driven minimum; the
// target aspect ratio is matched exactly unless that floor forced an
// override.
type GridDimensions struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	GridWidth    float64 `json:"grid_width"`
	GridHeight   float64 `json:"grid_height"`
}

// RowHeight returns the derived per-hour row height.
func (d GridDimensions) RowHeight(hourRange int) float64 {
	if hourRange <= 0 {
		return 0
	}
	return d.GridHeight / float64(hourRange)
}

// ColumnWidth returns the derived per-day column width.
func (d GridDimensions) ColumnWidth(numColumns int) float64 {
	if numColumns <= 0 {
		return 0
	}
	return d.GridWidth / float64(numColumns)
}

// Ratio returns canvas width over height.
func (d GridDimensions) Ratio() float64 {
	if d.CanvasHeight == 0 {
		return 0
	}
	return d.CanvasWidth / d.CanvasHeight
}
