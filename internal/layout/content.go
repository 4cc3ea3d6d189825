package layout

import (
	"math"

	"gridcal/internal/model"
)

// Content-driven sizing floors. All values are logical px.
const (
	// AbsoluteMinColumnWidth is the hard floor for a day column, no matter
	// how little text the entries carry.
	AbsoluteMinColumnWidth = 60

	// columnPadding is added to the text-driven column width for card
	// insets and gaps.
	columnPadding = 16

	// BaseRowHeight is the minimum per-hour row height.
	BaseRowHeight = 48

	// MaxRowHeight caps the per-hour row height so one outlier entry
	// cannot blow up the whole grid.
	MaxRowHeight = 200

	// minDurationHours floors an entry's effective duration: zero-length
	// entries still get half an hour of card height.
	minDurationHours = 0.5

	// LineHeightFactor converts a font size into a line height. The
	// renderer uses the same factor so drawn wrapping matches estimates.
	LineHeightFactor = 1.35

	notesSeparator = 6

	// Default hour window used when there are no entries, so the grid is
	// never degenerate.
	defaultStartHour = 8
	defaultHourRange = 8
)

func cardPadding(cfg model.LayoutConfig) float64 {
	if cfg.Compact {
		return 8
	}
	return 12
}

// EntryMinWidth estimates the narrowest column this entry tolerates: every
// visible text field must fit within the two-line wrap budget.
func EntryMinWidth(e model.Entry, cfg model.LayoutConfig) float64 {
	w := MinWrapWidth(e.Title, cfg.TitleSize())

	detail := cfg.DetailSize()
	if e.FieldVisible(model.FieldClassType, cfg.Show) {
		w = math.Max(w, MinWrapWidth(e.ClassType, detail))
	}
	if e.FieldVisible(model.FieldTime, cfg.Show) {
		w = math.Max(w, MinWrapWidth(e.TimeLabel(), detail))
	}
	if e.FieldVisible(model.FieldLocation, cfg.Show) {
		w = math.Max(w, MinWrapWidth(e.Location, detail))
	}
	if e.FieldVisible(model.FieldNotes, cfg.Show) {
		w = math.Max(w, MinWrapWidth(e.Notes, detail))
	}
	return w
}

// ColumnMinWidth returns the minimum day-column width across all entries.
//
// Sizing is worst-case on purpose: a single long room name must not clip
// even if every other entry is short.
func ColumnMinWidth(entries []model.Entry, cfg model.LayoutConfig) float64 {
	w := 0.0
	for _, e := range entries {
		w = math.Max(w, EntryMinWidth(e, cfg))
	}
	w += columnPadding
	return math.Max(w, AbsoluteMinColumnWidth)
}

// EntryMinHeight estimates the pixel height this entry needs inside a column
// of the given width so that no visible field clips.
func EntryMinHeight(e model.Entry, cfg model.LayoutConfig, columnWidth float64) float64 {
	pad := cardPadding(cfg)
	titleLine := cfg.TitleSize() * LineHeightFactor
	detailLine := cfg.DetailSize() * LineHeightFactor
	textWidth := columnWidth - 2*pad

	h := 2 * pad

	titleLines := WrappedLines(e.Title, cfg.TitleSize(), textWidth)
	if titleLines > maxWrapLines {
		titleLines = maxWrapLines
	}
	if titleLines < 1 {
		titleLines = 1
	}
	h += titleLine * float64(titleLines)

	if e.FieldVisible(model.FieldClassType, cfg.Show) && e.ClassType != "" {
		h += detailLine
	}
	if e.FieldVisible(model.FieldTime, cfg.Show) {
		h += detailLine
	}
	if e.FieldVisible(model.FieldLocation, cfg.Show) && e.Location != "" {
		h += detailLine
	}
	if e.FieldVisible(model.FieldNotes, cfg.Show) && e.Notes != "" {
		h += 2*detailLine + notesSeparator
	}
	return h
}

// PerHourHeight returns the per-hour row height that fits every entry: the
// worst-case ratio of required card height to entry duration, never below
// BaseRowHeight and clamped to MaxRowHeight.
func PerHourHeight(entries []model.Entry, cfg model.LayoutConfig, columnWidth float64) float64 {
	h := float64(BaseRowHeight)
	for _, e := range entries {
		dur := math.Max(e.DurationHours(), minDurationHours)
		h = math.Max(h, EntryMinHeight(e, cfg, columnWidth)/dur)
	}
	return math.Min(h, MaxRowHeight)
}

// HourRange derives the visible hour window [startHour, startHour+hours)
// from the entries. With no entries it falls back to a fixed default window.
func HourRange(entries []model.Entry) (startHour, hours int) {
	if len(entries) == 0 {
		return defaultStartHour, defaultHourRange
	}

	first, last := 24.0, 0.0
	for _, e := range entries {
		first = math.Min(first, e.Start.Hours())
		end := math.Max(e.End.Hours(), e.Start.Hours()+minDurationHours)
		last = math.Max(last, end)
	}

	startHour = int(math.Floor(first))
	endHour := int(math.Ceil(last))
	if endHour <= startHour {
		endHour = startHour + 1
	}
	return startHour, endHour - startHour
}
