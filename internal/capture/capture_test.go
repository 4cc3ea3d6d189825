package capture

import (
	"context"
	"image/color"
	"testing"

	"gridcal/internal/scene"
)

// testSurface builds a 40x30 surface: an opaque red background sheet and a
// 10x10 blue foreground card at (10,10).
func testSurface() *scene.Node {
	root := scene.NewNode("surface")
	root.Bounds = scene.Rect{W: 40, H: 30}
	root.Structural = true

	sheet := scene.NewNode("sheet")
	sheet.Bounds = scene.Rect{W: 40, H: 30}
	sheet.Fill = color.NRGBA{R: 0xff, A: 0xff}

	card := scene.NewNode("card")
	card.Bounds = scene.Rect{X: 10, Y: 10, W: 10, H: 10}
	card.Layer = scene.LayerForeground
	card.Fill = color.NRGBA{B: 0xff, A: 0xff}

	return root.Add(sheet, card)
}

func TestCaptureLayers_Complementary(t *testing.T) {
	stage := &Stage{}
	layers, err := stage.CaptureLayers(context.Background(), testSurface(), 1, nil)
	if err != nil {
		t.Fatalf("CaptureLayers: %v", err)
	}

	// Background pass: the card is concealed, red shows through.
	if got := layers.Background.NRGBAAt(15, 15); got.R != 0xff || got.B != 0 {
		t.Fatalf("background at card position = %+v, want red", got)
	}

	// Foreground pass: only the card paints; elsewhere is transparent.
	if got := layers.Foreground.NRGBAAt(15, 15); got.B != 0xff {
		t.Fatalf("foreground card pixel = %+v, want blue", got)
	}
	if got := layers.Foreground.NRGBAAt(5, 5); got.A != 0 {
		t.Fatalf("foreground outside card = %+v, want transparent", got)
	}

	if layers.Background.Bounds() != layers.Foreground.Bounds() {
		t.Fatal("layer dimensions differ")
	}
}

func TestCaptureLayer_PixelRatio(t *testing.T) {
	stage := &Stage{}
	img, err := stage.CaptureLayer(context.Background(), testSurface(), Options{PixelRatio: 2})
	if err != nil {
		t.Fatalf("CaptureLayer: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 80 || h != 60 {
		t.Fatalf("raster is %dx%d, want 80x60", w, h)
	}
}

func TestCaptureLayer_DoesNotDisturbLiveSurface(t *testing.T) {
	stage := &Stage{}
	surface := testSurface()

	if _, err := stage.CaptureLayers(context.Background(), surface, 1, nil); err != nil {
		t.Fatalf("CaptureLayers: %v", err)
	}

	surface.Visit(func(n *scene.Node, _, _ float64) bool {
		if n.Concealed {
			t.Fatalf("live node %q was concealed by a capture", n.ID)
		}
		return true
	})
}

func TestStage_EmptiedOnEveryPath(t *testing.T) {
	stage := &Stage{}

	if _, err := stage.CaptureLayer(context.Background(), testSurface(), Options{}); err != nil {
		t.Fatalf("CaptureLayer: %v", err)
	}
	if stage.Staged() {
		t.Fatal("stage still holds a clone after a successful capture")
	}

	// Error path: zero-area surface.
	empty := scene.NewNode("empty")
	if _, err := stage.CaptureLayer(context.Background(), empty, Options{}); err == nil {
		t.Fatal("expected error for zero-area surface")
	}
	if stage.Staged() {
		t.Fatal("stage still holds a clone after a failed capture")
	}
}

func TestCaptureLayer_NilSurface(t *testing.T) {
	stage := &Stage{}
	if _, err := stage.CaptureLayer(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error for nil surface")
	}
}
