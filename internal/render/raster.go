package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"gridcal/internal/layout"
	"gridcal/internal/scene"
)

// Rasterize renders the scene tree into pixels at the given density
// multiplier. Hidden subtrees are skipped entirely; concealed nodes keep
// their geometry but are not painted, which is how layer captures split the
// surface without shifting anything.
func Rasterize(root *scene.Node, pixelRatio float64, fonts *Fonts) *image.NRGBA {
	if root == nil || root.Bounds.Empty() {
		return nil
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	w := int(math.Ceil(root.Bounds.W * pixelRatio))
	h := int(math.Ceil(root.Bounds.H * pixelRatio))
	dc := gg.NewContext(w, h)
	dc.Scale(pixelRatio, pixelRatio)

	paintNode(dc, root, 0, 0, pixelRatio, fonts)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}

func paintNode(dc *gg.Context, n *scene.Node, ox, oy, ratio float64, fonts *Fonts) {
	if n.Hidden {
		return
	}
	x, y := ox+n.Bounds.X, oy+n.Bounds.Y
	if !n.Concealed && n.Opacity > 0 {
		drawNode(dc, n, x, y, ratio, fonts)
	}
	for _, c := range n.Children {
		paintNode(dc, c, x, y, ratio, fonts)
	}
}

func drawNode(dc *gg.Context, n *scene.Node, x, y, ratio float64, fonts *Fonts) {
	w, h := n.Bounds.W, n.Bounds.H
	if w <= 0 || h <= 0 {
		return
	}

	if n.Image != nil {
		if img := n.Image.Resolve(); img != nil {
			drawCover(dc, img, x, y, w, h, n.Corners, ratio)
		}
	}

	if n.Fill.A > 0 {
		setColor(dc, n.Fill, n.Opacity)
		pathRoundedRect(dc, x, y, w, h, n.Corners)
		dc.Fill()
	}

	if n.Stroke.A > 0 && n.StrokeWidth > 0 {
		setColor(dc, n.Stroke, n.Opacity)
		dc.SetLineWidth(n.StrokeWidth)
		pathRoundedRect(dc, x, y, w, h, n.Corners)
		dc.Stroke()
	}

	if n.Text != nil && n.Text.Content != "" {
		drawText(dc, n, x, y, fonts)
	}
}

func setColor(dc *gg.Context, c color.NRGBA, opacity float64) {
	dc.SetRGBA(
		float64(c.R)/255,
		float64(c.G)/255,
		float64(c.B)/255,
		float64(c.A)/255*opacity,
	)
}

// pathRoundedRect traces a rectangle with independent corner radii. Radii
// are clamped so opposite corners cannot overlap.
func pathRoundedRect(dc *gg.Context, x, y, w, h float64, c scene.Corners) {
	limit := math.Min(w, h) / 2
	tl := math.Min(math.Max(c.TL, 0), limit)
	tr := math.Min(math.Max(c.TR, 0), limit)
	br := math.Min(math.Max(c.BR, 0), limit)
	bl := math.Min(math.Max(c.BL, 0), limit)

	dc.NewSubPath()
	dc.MoveTo(x+tl, y)
	dc.LineTo(x+w-tr, y)
	dc.QuadraticTo(x+w, y, x+w, y+tr)
	dc.LineTo(x+w, y+h-br)
	dc.QuadraticTo(x+w, y+h, x+w-br, y+h)
	dc.LineTo(x+bl, y+h)
	dc.QuadraticTo(x, y+h, x, y+h-bl)
	dc.LineTo(x, y+tl)
	dc.QuadraticTo(x, y, x+tl, y)
	dc.ClosePath()
}

// drawCover draws img scaled to cover the node bounds, clipped to the
// rounded rectangle. The image is pre-scaled to device pixels and drawn
// under an identity transform so export density does not soften it.
func drawCover(dc *gg.Context, img image.Image, x, y, w, h float64, corners scene.Corners, ratio float64) {
	dw := int(math.Ceil(w * ratio))
	dh := int(math.Ceil(h * ratio))
	if dw <= 0 || dh <= 0 {
		return
	}
	scaled := coverScale(img, dw, dh)

	dc.Push()
	pathRoundedRect(dc, x, y, w, h, corners)
	dc.Clip()
	dc.Identity()
	dc.DrawImage(gg.ImageBufFromImage(scaled), math.Round(x*ratio), math.Round(y*ratio))
	dc.Pop()
}

// coverScale center-crops src to the destination aspect ratio and scales it
// to exactly dw x dh.
func coverScale(src image.Image, dw, dh int) *image.NRGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	if sw == 0 || sh == 0 {
		return dst
	}

	srcRatio := float64(sw) / float64(sh)
	dstRatio := float64(dw) / float64(dh)

	crop := sb
	if srcRatio > dstRatio {
		// Source is wider: crop left/right.
		cw := int(float64(sh) * dstRatio)
		x0 := sb.Min.X + (sw-cw)/2
		crop = image.Rect(x0, sb.Min.Y, x0+cw, sb.Max.Y)
	} else if srcRatio < dstRatio {
		// Source is taller: crop top/bottom.
		ch := int(float64(sw) / dstRatio)
		y0 := sb.Min.Y + (sh-ch)/2
		crop = image.Rect(crop.Min.X, y0, crop.Max.X, y0+ch)
	}

	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

func drawText(dc *gg.Context, n *scene.Node, x, y float64, fonts *Fonts) {
	if !fonts.Ready() {
		return
	}
	t := n.Text
	size := t.Size
	if size <= 0 {
		size = 12
	}

	maxChars := int(n.Bounds.W / layout.CharWidth(size))
	if maxChars < 1 {
		maxChars = 1
	}
	maxLines := t.MaxLines
	if maxLines < 1 {
		maxLines = 1
	}
	lines := wrapText(t.Content, maxChars, maxLines)
	if len(lines) == 0 {
		return
	}

	dc.SetFont(fonts.source.Face(size))
	setColor(dc, t.Color, n.Opacity)

	lineH := size * layout.LineHeightFactor
	ascent := size * 0.8
	for i, line := range lines {
		dc.DrawString(line, x, y+float64(i)*lineH+ascent)
	}
}
