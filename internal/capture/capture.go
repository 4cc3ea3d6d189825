// Package capture produces the two rasterizations an export needs: one with
// only background chrome visible, one with only foreground content visible.
//
// Both passes render a clone of the live surface parked in a shared staging
// slot, so the interactive tree is never disturbed. The stage holds at most
// one clone and is emptied on every return path; a mutex enforces the
// sequential-capture discipline that keeps the two passes from corrupting
// each other's view of the staging state.
package capture

import (
	"context"
	"errors"
	"image"
	"sync"

	"gridcal/internal/render"
	"gridcal/internal/scene"
)

// DefaultPixelRatio is the export density multiplier: export output is
// rendered at 3x for sharpness.
const DefaultPixelRatio = 3

// Stage is the off-screen staging area. Use DefaultStage for the shared
// process-wide instance; tests may construct their own.
type Stage struct {
	mu    sync.Mutex
	clone *scene.Node
}

var (
	defaultStage *Stage
	stageOnce    sync.Once
)

// DefaultStage returns the process-wide stage, lazily created on first use
// and reused across exports.
func DefaultStage() *Stage {
	stageOnce.Do(func() { defaultStage = &Stage{} })
	return defaultStage
}

// Options configure one layer capture.
type Options struct {
	// PixelRatio defaults to DefaultPixelRatio when <= 0.
	PixelRatio float64

	// Prepare mutates the staged clone before rasterization, typically
	// concealing one layer. Concealment keeps geometry so both captures
	// stay pixel-aligned.
	Prepare func(*scene.Node)

	Fonts *render.Fonts
}

// Layers are the two same-dimension rasters of one logical surface. They
// exist only inside a single export operation.
type Layers struct {
	Background *image.NRGBA
	Foreground *image.NRGBA
}

// CaptureLayer clones the surface into the stage, applies the prepare
// mutation, resolves embedded images (a failed load counts as loaded), and
// rasterizes at the pixel ratio. The stage is emptied before returning on
// every path.
func (s *Stage) CaptureLayer(ctx context.Context, surface *scene.Node, opts Options) (*image.NRGBA, error) {
	if surface == nil {
		return nil, errors.New("capture: surface is nil")
	}
	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = DefaultPixelRatio
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := surface.Clone()
	s.clone = clone
	defer func() { s.clone = nil }()

	if opts.Prepare != nil {
		opts.Prepare(clone)
	}

	if err := resolveImages(ctx, clone); err != nil {
		return nil, err
	}

	img := render.Rasterize(clone, ratio, opts.Fonts)
	if img == nil {
		return nil, errors.New("capture: surface has no area")
	}
	return img, nil
}

// CaptureLayers runs the two captures strictly in sequence: the background
// pass must fully resolve before the foreground pass begins, since both
// mutate the shared staging slot.
func (s *Stage) CaptureLayers(ctx context.Context, surface *scene.Node, pixelRatio float64, fonts *render.Fonts) (Layers, error) {
	bg, err := s.CaptureLayer(ctx, surface, Options{
		PixelRatio: pixelRatio,
		Prepare:    ConcealLayer(scene.LayerForeground),
		Fonts:      fonts,
	})
	if err != nil {
		return Layers{}, err
	}

	fg, err := s.CaptureLayer(ctx, surface, Options{
		PixelRatio: pixelRatio,
		Prepare:    ConcealLayer(scene.LayerBackground),
		Fonts:      fonts,
	})
	if err != nil {
		return Layers{}, err
	}

	return Layers{Background: bg, Foreground: fg}, nil
}

// Staged reports whether a clone is currently parked in the stage. Outside a
// running capture this must always be false.
func (s *Stage) Staged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone != nil
}

// ConcealLayer returns a prepare func that conceals every node on the given
// layer, hiding it from paint while preserving its geometry.
func ConcealLayer(layer scene.Layer) func(*scene.Node) {
	return func(root *scene.Node) {
		root.Visit(func(n *scene.Node, _, _ float64) bool {
			if n.Layer == layer {
				n.Concealed = true
			}
			return true
		})
	}
}

// resolveImages decodes every image fill in the staged clone. Decode
// failures are swallowed: the fill stays empty and the capture proceeds.
func resolveImages(ctx context.Context, root *scene.Node) error {
	var err error
	root.Visit(func(n *scene.Node, _, _ float64) bool {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			return false
		}
		if n.Image != nil {
			n.Image.Resolve()
		}
		return true
	})
	return err
}
