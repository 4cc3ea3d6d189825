package scene

import (
	"math"
	"testing"
)

func surfaceWithCards(radii ...string) *Node {
	root := NewNode("surface")
	root.Bounds = Rect{W: 800, H: 600}
	root.Structural = true

	for i, f := range radii {
		card := NewNode("card")
		card.Bounds = Rect{X: float64(i) * 100, Y: 50, W: 90, H: 80}
		card.BackdropFilter = f
		root.Add(card)
	}
	return root
}

func TestCollect_Completeness(t *testing.T) {
	// Three blurred elements among plain ones: exactly three regions, all
	// with a positive radius.
	root := surfaceWithCards("blur(12px)", "", "blur(8px)", "", "blur(4px)")
	regions := Collect(root)
	if len(regions) != 3 {
		t.Fatalf("Collect returned %d regions, want 3", len(regions))
	}
	for _, r := range regions {
		if r.Radius <= 0 {
			t.Fatalf("region with non-positive radius: %+v", r)
		}
	}
}

func TestCollect_SkipsStructuralButNotChildren(t *testing.T) {
	root := NewNode("surface")
	root.Bounds = Rect{W: 400, H: 400}
	root.Structural = true

	wrapper := NewNode("wrapper")
	wrapper.Bounds = Rect{X: 10, Y: 10, W: 300, H: 300}
	wrapper.Structural = true
	wrapper.BackdropFilter = "blur(20px)" // must not collect: structural

	child := NewNode("glass")
	child.Bounds = Rect{X: 5, Y: 5, W: 100, H: 100}
	child.BackdropFilter = "blur(6px)"

	root.Add(wrapper.Add(child))

	regions := Collect(root)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	// Offsets accumulate through the structural parent.
	if regions[0].X != 15 || regions[0].Y != 15 {
		t.Fatalf("region at (%v, %v), want (15, 15)", regions[0].X, regions[0].Y)
	}
}

func TestCollect_SkipsInvisible(t *testing.T) {
	root := surfaceWithCards("blur(10px)", "blur(10px)", "blur(10px)")
	root.Children[0].Hidden = true
	root.Children[1].Opacity = 0
	root.Children[2].Bounds.W = 0

	if regions := Collect(root); len(regions) != 0 {
		t.Fatalf("got %d regions from invisible nodes, want 0", len(regions))
	}
}

func TestCollect_ClipsToSurface(t *testing.T) {
	root := NewNode("surface")
	root.Bounds = Rect{W: 200, H: 200}
	root.Structural = true

	partial := NewNode("partial")
	partial.Bounds = Rect{X: 150, Y: -20, W: 100, H: 100}
	partial.BackdropFilter = "blur(5px)"

	offscreen := NewNode("offscreen")
	offscreen.Bounds = Rect{X: 300, Y: 0, W: 50, H: 50}
	offscreen.BackdropFilter = "blur(5px)"

	root.Add(partial, offscreen)

	regions := Collect(root)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1 (offscreen element excluded)", len(regions))
	}
	r := regions[0]
	if r.X != 150 || r.Y != 0 || r.Width != 50 || r.Height != 80 {
		t.Fatalf("clipped region = %+v, want x=150 y=0 w=50 h=80", r)
	}
}

func TestCollect_CarriesCorners(t *testing.T) {
	root := surfaceWithCards("blur(16px)")
	root.Children[0].Corners = Corners{TL: 12, TR: 0, BR: 8, BL: 4}

	regions := Collect(root)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].Corners != (Corners{TL: 12, TR: 0, BR: 8, BL: 4}) {
		t.Fatalf("corners = %+v", regions[0].Corners)
	}
}

func TestParseBlurRadius(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"blur(12px)", 12},
		{"blur(7.5px)", 7.5},
		{"blur(3)", 3},
		{"  BLUR( 24px )  ", 24},
		{"", 0},
		{"none", 0},
		{"blur()", 0},
		{"blur(abc)", 0},
		{"blur(-4px)", 0},
		{"brightness(0.5)", 0},
		{"blur(12px", 0},
	}
	for _, tc := range tests {
		if got := ParseBlurRadius(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("ParseBlurRadius(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
