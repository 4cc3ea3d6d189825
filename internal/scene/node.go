// Package scene holds the retained scene graph for the calendar surface.
//
// The live view and the export pipeline share one tree: nodes carry their
// geometry, paint, and effect descriptors, and render passes decide per node
// whether to paint it. This replaces "clone the DOM and toggle visibility"
// with two passes over the same graph using complementary predicates.
package scene

import (
	"image"
	"image/color"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// Rect is an axis-aligned rectangle in logical px. Node bounds are relative
// to the parent node; walks accumulate offsets to get surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect clips r against o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Corners holds per-corner rounding radii. Corners need not be symmetric.
type Corners struct {
	TL, TR, BR, BL float64
}

func UniformCorners(r float64) Corners {
	return Corners{TL: r, TR: r, BR: r, BL: r}
}

// Layer partitions the surface for compositing: background chrome is what
// sits behind blur-bearing elements, foreground is the content drawn sharp
// on top.
type Layer int

const (
	LayerBackground Layer = iota
	LayerForeground
)

// Text is an optional text span painted inside the node bounds.
type Text struct {
	Content string
	Size    float64
	Color   color.NRGBA
	// MaxLines caps wrapping; 0 means a single line.
	MaxLines int
}

// ImageFill is a lazily resolved raster fill, scaled to cover the node.
// Resolution happens at capture time; a failed load is treated as loaded
// (the fill just stays empty) so export never blocks on one asset.
type ImageFill struct {
	Path string

	img      image.Image
	resolved bool
}

// Resolve decodes the image once. Safe to call repeatedly.
func (f *ImageFill) Resolve() image.Image {
	if f.resolved {
		return f.img
	}
	f.resolved = true

	r, err := os.Open(f.Path)
	if err != nil {
		return nil
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil
	}
	f.img = img
	return f.img
}

func (f *ImageFill) Resolved() bool { return f.resolved }

// Node is one element of the surface tree.
type Node struct {
	ID     string
	Bounds Rect

	Corners Corners
	Layer   Layer

	// Structural marks a pure container that must never blur on its own,
	// so a parent and its children are not double-collected.
	Structural bool

	// Hidden removes the node and its subtree entirely (geometry gone).
	// Concealed keeps the geometry but skips painting, which is what the
	// layer captures toggle so both rasters stay aligned.
	Hidden    bool
	Concealed bool

	// Opacity in [0,1]. NewNode sets 1; a zero-opacity node is invisible.
	Opacity float64

	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64

	// BackdropFilter is the style layer's effect string, e.g. "blur(24px)".
	// A malformed value contributes no effect.
	BackdropFilter string

	Text  *Text
	Image *ImageFill

	Children []*Node
}

// NewNode returns a visible, fully opaque node.
func NewNode(id string) *Node {
	return &Node{ID: id, Opacity: 1}
}

// Add appends children and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Clone deep-copies the node tree. Image fills share pixel data (decoded
// images are immutable here) but copy their resolution state.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Text != nil {
		t := *n.Text
		c.Text = &t
	}
	if n.Image != nil {
		im := *n.Image
		c.Image = &im
	}
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = child.Clone()
	}
	return &c
}

// Visit calls fn for every node in the subtree with its absolute origin,
// skipping hidden subtrees. fn returning false prunes the subtree.
func (n *Node) Visit(fn func(node *Node, absX, absY float64) bool) {
	n.visit(0, 0, fn)
}

func (n *Node) visit(ox, oy float64, fn func(node *Node, absX, absY float64) bool) {
	if n.Hidden {
		return
	}
	x, y := ox+n.Bounds.X, oy+n.Bounds.Y
	if !fn(n, x, y) {
		return
	}
	for _, c := range n.Children {
		c.visit(x, y, fn)
	}
}
