package scene

// BlurRegion is a surface-relative area where a backdrop blur must be
// reproduced in the flattened export. Regions exist only for the duration of
// one export run.
type BlurRegion struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
	Corners       Corners
}

// Collect walks every descendant of the surface root and returns one region
// per element with an effective backdrop blur.
//
// Skipped: structural containers (their children are still visited, so a
// wrapper never double-blurs with its contents), hidden or concealed
// subtrees, zero-opacity and zero-size nodes, and radii <= 0 (including
// malformed filter strings, which parse to 0).
//
// Bounds are clipped to the surface's own bounds: a partially offscreen
// element is clipped, not excluded; a fully offscreen one clips to nothing
// and drops out.
func Collect(root *Node) []BlurRegion {
	if root == nil {
		return nil
	}
	surface := Rect{W: root.Bounds.W, H: root.Bounds.H}

	var regions []BlurRegion
	root.Visit(func(n *Node, absX, absY float64) bool {
		if n == root || n.Concealed || n.Structural || n.Opacity <= 0 || n.Bounds.Empty() {
			return true
		}

		radius := ParseBlurRadius(n.BackdropFilter)
		if radius <= 0 {
			return true
		}

		clipped := Rect{X: absX, Y: absY, W: n.Bounds.W, H: n.Bounds.H}.Intersect(surface)
		if clipped.Empty() {
			return true
		}

		regions = append(regions, BlurRegion{
			X:       clipped.X,
			Y:       clipped.Y,
			Width:   clipped.W,
			Height:  clipped.H,
			Radius:  radius,
			Corners: n.Corners,
		})
		return true
	})
	return regions
}
