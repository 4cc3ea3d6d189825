package layout

import (
	"math"

	"gridcal/internal/model"
)

// Fixed chrome around the hour grid, in logical px. The surface builder and
// the solver must agree on these, so they live here.
const (
	HeaderHeight    = 84
	FooterHeight    = 40
	TimeColumnWidth = 56
	CanvasPadding   = 24

	// comfortableColumnWidth is the per-column baseline the natural size
	// aims for, so sparse schedules do not look cramped.
	comfortableColumnWidth = 120

	landscapeRatio = 16.0 / 9.0
	portraitRatio  = 9.0 / 16.0
)

func chromeWidth() float64  { return TimeColumnWidth + 2*CanvasPadding }
func chromeHeight() float64 { return HeaderHeight + FooterHeight + 2*CanvasPadding }

// TargetRatio interpolates the export aspect ratio between wide landscape
// (slider 0) and tall portrait (slider 1).
func TargetRatio(aspectSlider float64) float64 {
	return landscapeRatio + (portraitRatio-landscapeRatio)*aspectSlider
}

// Solve computes the canvas and grid dimensions for the surface.
//
// Inputs are pre-validated by the caller: numColumns >= 1, hourRange >= 1,
// both minimums > 0, aspectSlider in [0,1].
//
// The solver balances two goals:
//
//   - the content-fit floor: no column narrower than minColumnWidth, no hour
//     row shorter than perHourMinHeight;
//   - the target aspect ratio from the slider.
//
// When they conflict, the floor always wins; legibility is never traded for
// shape. Shrinking the width below the natural size increases text wrapping,
// so the height is compensated by a sub-linear (square root) function of the
// compression before the width is re-derived to keep the ratio exact.
func Solve(numColumns, hourRange int, perHourMinHeight, minColumnWidth, aspectSlider float64) model.GridDimensions {
	minGridW := float64(numColumns) * minColumnWidth
	minGridH := float64(hourRange) * perHourMinHeight

	naturalGridW := float64(numColumns) * math.Max(minColumnWidth, comfortableColumnWidth)
	naturalGridH := minGridH

	minCanvasW := minGridW + chromeWidth()
	minCanvasH := minGridH + chromeHeight()
	naturalW := naturalGridW + chromeWidth()
	naturalH := naturalGridH + chromeHeight()

	target := TargetRatio(aspectSlider)
	naturalRatio := naturalW / naturalH

	var w, h float64
	ideal := naturalH * target // width the target asks for at natural height

	switch {
	case target >= naturalRatio:
		// Target is wider than the content: keep the natural height and
		// stretch the width out to the ratio.
		w = ideal
		h = naturalH

	case ideal >= minCanvasW:
		// Target is narrower but there is width to give. Narrower columns
		// wrap more text, so inflate the height sub-linearly with the
		// compression, then re-derive the width to hold the ratio exact.
		compression := naturalW / ideal
		h = naturalH * (1 + (math.Sqrt(compression) - 1))
		w = h * target
		if w < minCanvasW {
			w = minCanvasW
		}

	default:
		// The ratio would need a width below the floor. Hold the width at
		// the floor and expand the height instead; ratio adherence is
		// sacrificed for the content fit.
		w = minCanvasW
		compression := naturalW / minCanvasW
		h = math.Max(naturalH*math.Sqrt(compression), minCanvasW/target)
	}

	if w < minCanvasW {
		w = minCanvasW
	}
	if h < minCanvasH {
		h = minCanvasH
	}

	return model.GridDimensions{
		CanvasWidth:  w,
		CanvasHeight: h,
		GridWidth:    w - chromeWidth(),
		GridHeight:   h - chromeHeight(),
	}
}

// SolveForEntries is the high-level entry point: derives the hour range and
// the content-driven minimums from the entries, then solves.
func SolveForEntries(entries []model.Entry, cfg model.LayoutConfig, numColumns int) model.GridDimensions {
	if numColumns < 1 {
		numColumns = 7
	}
	_, hours := HourRange(entries)
	colW := ColumnMinWidth(entries, cfg)
	rowH := PerHourHeight(entries, cfg, colW)
	return Solve(numColumns, hours, rowH, colW, cfg.AspectSlider)
}
