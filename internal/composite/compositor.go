package composite

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"gridcal/internal/scene"
)

// Compositor flattens the two capture layers and the collected blur regions
// into the final raster.
//
// Live backdrop blur is computed by a real-time compositor against whatever
// sits behind each element, which a single flat screenshot has already
// destroyed. Re-blurring the background layer per region at the export
// resolution reproduces the effect faithfully and resolution-independently.
type Compositor struct {
	// blurFn produces a fully blurred copy of the background layer. It is
	// a field so tests can instrument the number of blur passes taken.
	blurFn func(*image.NRGBA, int) *image.NRGBA
}

func New() *Compositor {
	return &Compositor{blurFn: Blur}
}

// Composite draws background, then each region's blurred patch clipped to
// its rounded-rectangle shape, then the foreground sharp on top.
//
// scale converts region coordinates (logical px) into raster px. Blurred
// copies of the background are memoized by rounded radius, so regions
// sharing a radius share one blur pass. Both layers must have identical
// dimensions.
func (c *Compositor) Composite(bg, fg *image.NRGBA, regions []scene.BlurRegion, scale float64) (*image.NRGBA, error) {
	if bg == nil || fg == nil {
		return nil, errors.New("composite: missing layer")
	}
	if bg.Bounds() != fg.Bounds() {
		return nil, errors.New("composite: layer dimensions differ")
	}
	if scale <= 0 {
		scale = 1
	}

	bounds := bg.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, bg, bounds.Min, draw.Src)

	blurred := make(map[int]*image.NRGBA)
	for _, r := range regions {
		radius := int(math.Round(r.Radius * scale))
		if radius <= 0 {
			continue
		}

		rect := scaleRect(r, scale).Intersect(bounds)
		if rect.Empty() {
			continue
		}

		patch, ok := blurred[radius]
		if !ok {
			patch = c.blurFn(bg, radius)
			blurred[radius] = patch
		}

		mask := roundedMask(rect, scaleCorners(r.Corners, scale))
		draw.DrawMask(out, rect, patch, rect.Min, mask, rect.Min, draw.Over)
	}

	draw.Draw(out, bounds, fg, bounds.Min, draw.Over)
	return out, nil
}

func scaleRect(r scene.BlurRegion, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X*scale)),
		int(math.Round(r.Y*scale)),
		int(math.Round((r.X+r.Width)*scale)),
		int(math.Round((r.Y+r.Height)*scale)),
	)
}

func scaleCorners(c scene.Corners, scale float64) scene.Corners {
	return scene.Corners{
		TL: c.TL * scale,
		TR: c.TR * scale,
		BR: c.BR * scale,
		BL: c.BL * scale,
	}
}

// roundedMask builds an anti-aliased alpha mask for rect with per-corner
// radii. The mask shares rect's coordinate space so DrawMask points line up.
func roundedMask(rect image.Rectangle, c scene.Corners) *image.Alpha {
	mask := image.NewAlpha(rect)
	w := float64(rect.Dx())
	h := float64(rect.Dy())

	limit := math.Min(w, h) / 2
	tl := math.Min(math.Max(c.TL, 0), limit)
	tr := math.Min(math.Max(c.TR, 0), limit)
	br := math.Min(math.Max(c.BR, 0), limit)
	bl := math.Min(math.Max(c.BL, 0), limit)

	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			// Pixel center in rect-local coordinates.
			x := float64(px-rect.Min.X) + 0.5
			y := float64(py-rect.Min.Y) + 0.5

			a := 1.0
			switch {
			case x < tl && y < tl:
				a = cornerCoverage(x, y, tl, tl, tl)
			case x > w-tr && y < tr:
				a = cornerCoverage(x, y, w-tr, tr, tr)
			case x > w-br && y > h-br:
				a = cornerCoverage(x, y, w-br, h-br, br)
			case x < bl && y > h-bl:
				a = cornerCoverage(x, y, bl, h-bl, bl)
			}
			mask.SetAlpha(px, py, alpha8(a))
		}
	}
	return mask
}

// cornerCoverage approximates coverage of a pixel center at (x, y) by a
// circle of radius r centered at (cx, cy): full inside, a one-pixel
// anti-aliased falloff across the edge.
func cornerCoverage(x, y, cx, cy, r float64) float64 {
	d := math.Hypot(x-cx, y-cy)
	return r - d + 0.5
}

func alpha8(a float64) color.Alpha {
	if a <= 0 {
		return color.Alpha{}
	}
	if a >= 1 {
		return color.Alpha{A: 255}
	}
	return color.Alpha{A: uint8(a*255 + 0.5)}
}
