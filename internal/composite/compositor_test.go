package composite

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"gridcal/internal/scene"
)

func gradientLayer(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Gradient plus a checker so blurring is observable anywhere.
			checker := uint8(((x/4 + y/4) % 2) * 255)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: checker,
				A: 0xff,
			})
		}
	}
	return img
}

func TestComposite_RoundTrip(t *testing.T) {
	// No blur regions plus a fully transparent foreground must reproduce
	// the background exactly.
	bg := gradientLayer(64, 48)
	fg := image.NewNRGBA(bg.Bounds())

	out, err := New().Composite(bg, fg, nil, 1)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !bytes.Equal(out.Pix, bg.Pix) {
		t.Fatal("output differs from background layer")
	}
}

func TestComposite_DimensionMismatch(t *testing.T) {
	bg := gradientLayer(64, 48)
	fg := image.NewNRGBA(image.Rect(0, 0, 32, 48))
	if _, err := New().Composite(bg, fg, nil, 1); err == nil {
		t.Fatal("expected error for mismatched layers")
	}
	if _, err := New().Composite(nil, fg, nil, 1); err == nil {
		t.Fatal("expected error for nil background")
	}
}

func TestComposite_BlurCacheShared(t *testing.T) {
	bg := gradientLayer(64, 64)
	fg := image.NewNRGBA(bg.Bounds())

	regions := []scene.BlurRegion{
		{X: 2, Y: 2, Width: 20, Height: 20, Radius: 8},
		{X: 30, Y: 30, Width: 20, Height: 20, Radius: 8},
		{X: 10, Y: 40, Width: 10, Height: 10, Radius: 3},
	}

	calls := 0
	c := New()
	c.blurFn = func(src *image.NRGBA, radius int) *image.NRGBA {
		calls++
		return Blur(src, radius)
	}

	if _, err := c.Composite(bg, fg, regions, 1); err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// Two distinct radii: the shared radius must hit the cache.
	if calls != 2 {
		t.Fatalf("blur called %d times, want 2", calls)
	}
}

func TestComposite_BlurredInsideSharpOutside(t *testing.T) {
	bg := gradientLayer(64, 64)
	fg := image.NewNRGBA(bg.Bounds())
	region := scene.BlurRegion{X: 16, Y: 16, Width: 32, Height: 32, Radius: 10}

	out, err := New().Composite(bg, fg, []scene.BlurRegion{region}, 1)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	// Outside the region: untouched.
	if out.NRGBAAt(2, 2) != bg.NRGBAAt(2, 2) {
		t.Fatal("pixel outside blur region changed")
	}
	// Center of the region: the horizontal gradient must have flattened.
	if out.NRGBAAt(32, 32) == bg.NRGBAAt(32, 32) {
		t.Fatal("pixel inside blur region unchanged")
	}
}

func TestComposite_ForegroundOnTop(t *testing.T) {
	bg := gradientLayer(16, 16)
	fg := image.NewNRGBA(bg.Bounds())
	fg.SetNRGBA(5, 5, color.NRGBA{R: 0xff, A: 0xff})

	out, err := New().Composite(bg, fg, nil, 1)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("foreground pixel = %+v", got)
	}
}

func TestBlur_PreservesUniform(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	out := Blur(img, 5)
	for i, p := range out.Pix {
		if p != 0x80 {
			t.Fatalf("uniform image changed at %d: %d", i, p)
		}
	}
}

func TestBlur_ZeroRadiusCopies(t *testing.T) {
	img := gradientLayer(8, 8)
	out := Blur(img, 0)
	if !bytes.Equal(out.Pix, img.Pix) {
		t.Fatal("zero-radius blur altered pixels")
	}
	if &out.Pix[0] == &img.Pix[0] {
		t.Fatal("zero-radius blur returned shared storage")
	}
}
