package composite

import "image"

// blurPasses is the number of box-blur passes; three passes approximate a
// Gaussian closely enough for backdrop effects.
const blurPasses = 3

// Blur returns a blurred copy of src with the given radius in pixels.
// radius <= 0 returns an unmodified copy.
func Blur(src *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		out := image.NewNRGBA(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	out := src
	for i := 0; i < blurPasses; i++ {
		out = boxBlur(out, radius)
	}
	return out
}

// boxBlur applies one box-blur pass using a two-pass (horizontal then
// vertical) sliding window, clamping at the edges.
func boxBlur(src *image.NRGBA, radius int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	diameter := 2*radius + 1

	// Horizontal pass: src -> tmp.
	for y := 0; y < h; y++ {
		var rSum, gSum, bSum, aSum int
		for i := -radius; i <= radius; i++ {
			o := pixOffset(src, clampIndex(i, w-1), y)
			rSum += int(src.Pix[o])
			gSum += int(src.Pix[o+1])
			bSum += int(src.Pix[o+2])
			aSum += int(src.Pix[o+3])
		}
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			tmp.Pix[o] = uint8(rSum / diameter)
			tmp.Pix[o+1] = uint8(gSum / diameter)
			tmp.Pix[o+2] = uint8(bSum / diameter)
			tmp.Pix[o+3] = uint8(aSum / diameter)

			// Slide the window: drop the left edge, add the right.
			oldO := pixOffset(src, clampIndex(x-radius, w-1), y)
			newO := pixOffset(src, clampIndex(x+radius+1, w-1), y)
			rSum += int(src.Pix[newO]) - int(src.Pix[oldO])
			gSum += int(src.Pix[newO+1]) - int(src.Pix[oldO+1])
			bSum += int(src.Pix[newO+2]) - int(src.Pix[oldO+2])
			aSum += int(src.Pix[newO+3]) - int(src.Pix[oldO+3])
		}
	}

	// Vertical pass: tmp -> dst.
	for x := 0; x < w; x++ {
		var rSum, gSum, bSum, aSum int
		for i := -radius; i <= radius; i++ {
			o := (clampIndex(i, h-1)*w + x) * 4
			rSum += int(tmp.Pix[o])
			gSum += int(tmp.Pix[o+1])
			bSum += int(tmp.Pix[o+2])
			aSum += int(tmp.Pix[o+3])
		}
		for y := 0; y < h; y++ {
			o := (y*w + x) * 4
			dst.Pix[o] = uint8(rSum / diameter)
			dst.Pix[o+1] = uint8(gSum / diameter)
			dst.Pix[o+2] = uint8(bSum / diameter)
			dst.Pix[o+3] = uint8(aSum / diameter)

			oldO := (clampIndex(y-radius, h-1)*w + x) * 4
			newO := (clampIndex(y+radius+1, h-1)*w + x) * 4
			rSum += int(tmp.Pix[newO]) - int(tmp.Pix[oldO])
			gSum += int(tmp.Pix[newO+1]) - int(tmp.Pix[oldO+1])
			bSum += int(tmp.Pix[newO+2]) - int(tmp.Pix[oldO+2])
			aSum += int(tmp.Pix[newO+3]) - int(tmp.Pix[oldO+3])
		}
	}

	return dst
}

// pixOffset indexes into src.Pix for coordinates relative to the bounds
// origin.
func pixOffset(img *image.NRGBA, x, y int) int {
	return y*img.Stride + x*4
}

func clampIndex(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
