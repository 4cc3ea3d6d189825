package layout

import (
	"math"
	"testing"

	"gridcal/internal/model"
)

func TestSolve_FloorInvariant(t *testing.T) {
	cases := []struct {
		cols, hours   int
		perHour, colW float64
	}{
		{1, 1, 40, 60},
		{3, 4, 60, 400},
		{5, 10, 48, 80},
		{7, 14, 200, 60},
		{7, 8, 48, 750},
		{2, 24, 120, 90},
	}

	for _, c := range cases {
		for slider := 0.0; slider <= 1.0001; slider += 0.05 {
			d := Solve(c.cols, c.hours, c.perHour, c.colW, slider)

			minW := float64(c.cols) * c.colW
			minH := float64(c.hours) * c.perHour
			if d.GridWidth < minW-1e-6 {
				t.Fatalf("Solve(%d,%d,%v,%v,%v) grid width %v below floor %v",
					c.cols, c.hours, c.perHour, c.colW, slider, d.GridWidth, minW)
			}
			if d.GridHeight < minH-1e-6 {
				t.Fatalf("Solve(%d,%d,%v,%v,%v) grid height %v below floor %v",
					c.cols, c.hours, c.perHour, c.colW, slider, d.GridHeight, minH)
			}
		}
	}
}

func TestSolve_RatioExactWhenShrinkable(t *testing.T) {
	// Natural canvas: 3 columns at the comfortable baseline, small floor.
	cols, hours := 3, 4
	perHour, colW := 60.0, 60.0

	naturalW := 3*120 + TimeColumnWidth + 2*CanvasPadding
	naturalH := 4*60 + HeaderHeight + FooterHeight + 2*CanvasPadding
	minCanvasW := 3*60 + TimeColumnWidth + 2*CanvasPadding
	naturalRatio := float64(naturalW) / float64(naturalH)

	for slider := 0.0; slider <= 1.0001; slider += 0.05 {
		target := TargetRatio(slider)
		ideal := float64(naturalH) * target
		if target >= naturalRatio || ideal < float64(minCanvasW) {
			continue // not in the shrink branch
		}

		d := Solve(cols, hours, perHour, colW, slider)
		if math.Abs(d.Ratio()-target) > 1e-9 {
			t.Fatalf("slider %v: ratio %v, want exactly %v", slider, d.Ratio(), target)
		}
	}
}

func TestSolve_SliderMonotonic(t *testing.T) {
	cases := []struct {
		cols, hours   int
		perHour, colW float64
	}{
		{5, 10, 48, 80},
		{3, 4, 60, 400},
		{7, 12, 60, 60},
	}

	for _, c := range cases {
		prev := Solve(c.cols, c.hours, c.perHour, c.colW, 0)
		for slider := 0.02; slider <= 1.0001; slider += 0.02 {
			d := Solve(c.cols, c.hours, c.perHour, c.colW, slider)
			if d.CanvasWidth > prev.CanvasWidth+1e-9 {
				t.Fatalf("case %+v slider %v: width grew %v -> %v", c, slider, prev.CanvasWidth, d.CanvasWidth)
			}
			if d.CanvasHeight < prev.CanvasHeight-1e-9 {
				t.Fatalf("case %+v slider %v: height shrank %v -> %v", c, slider, prev.CanvasHeight, d.CanvasHeight)
			}
			prev = d
		}
	}
}

func TestSolve_Idempotent(t *testing.T) {
	a := Solve(5, 10, 48, 80, 0.37)
	b := Solve(5, 10, 48, 80, 0.37)
	if a != b {
		t.Fatalf("identical inputs gave %+v and %+v", a, b)
	}
}

func TestSolve_LandscapeScenario(t *testing.T) {
	// 5 day columns, 10-hour range, slider 0: output ratio must be 16:9
	// within 0.01 as long as the minimum-size floor is not binding.
	d := Solve(5, 10, 48, 80, 0)
	want := 16.0 / 9.0
	if math.Abs(d.Ratio()-want) > 0.01 {
		t.Fatalf("ratio = %v, want %v +-0.01", d.Ratio(), want)
	}
}

func TestSolve_TextDrivenMinimumWins(t *testing.T) {
	// One long title forces a 400 px column; with 3 columns the grid must
	// come out at exactly 3x400 when the portrait target cannot be met.
	d := Solve(3, 4, 60, 400, 1)
	if math.Abs(d.GridWidth-1200) > 1e-6 {
		t.Fatalf("grid width = %v, want 1200", d.GridWidth)
	}
}

func TestSolveForEntries_Empty(t *testing.T) {
	cfg := model.DefaultLayoutConfig()
	d := SolveForEntries(nil, cfg, 7)
	if d.GridWidth <= 0 || d.GridHeight <= 0 {
		t.Fatalf("degenerate grid for empty schedule: %+v", d)
	}
	// Default window is 8 hours at the base row height.
	if d.GridHeight < defaultHourRange*BaseRowHeight-1e-6 {
		t.Fatalf("grid height %v below default window floor", d.GridHeight)
	}
}

func TestTargetRatio_Endpoints(t *testing.T) {
	if got := TargetRatio(0); math.Abs(got-16.0/9.0) > 1e-12 {
		t.Fatalf("TargetRatio(0) = %v", got)
	}
	if got := TargetRatio(1); math.Abs(got-9.0/16.0) > 1e-12 {
		t.Fatalf("TargetRatio(1) = %v", got)
	}
}
