// Package export orchestrates one export run: collect blur regions from the
// live surface, capture the two layers, composite, encode, and hand the
// finished image to the download collaborator.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridcal/internal/capture"
	"gridcal/internal/composite"
	appLog "gridcal/internal/log"
	"gridcal/internal/render"
	"gridcal/internal/scene"
)

// Sink receives the finished image and a suggested file name. How it is
// persisted or presented is none of this package's business.
type Sink func(name string, data []byte) error

// Exporter runs the capture-and-composite pipeline. Zero-value fields fall
// back to the shared stage, the default pixel ratio, and a fontless
// renderer.
type Exporter struct {
	PixelRatio float64
	Stage      *capture.Stage
	Fonts      *render.Fonts
	Compositor *composite.Compositor
	Sink       Sink
}

func New(sink Sink) *Exporter {
	return &Exporter{
		PixelRatio: capture.DefaultPixelRatio,
		Stage:      capture.DefaultStage(),
		Compositor: composite.New(),
		Sink:       sink,
	}
}

// Export flattens the surface into a PNG and hands it to the sink.
//
// A missing surface is absorbed with a warning and no file: export simply
// does not happen. Once underway, the run goes to completion or fails
// outright; there is no partial output on any path.
func (e *Exporter) Export(ctx context.Context, surface *scene.Node) error {
	if surface == nil {
		appLog.Warn("export: no surface to capture, skipping")
		return nil
	}

	started := time.Now()
	regions := scene.Collect(surface)

	stage := e.Stage
	if stage == nil {
		stage = capture.DefaultStage()
	}
	ratio := e.PixelRatio
	if ratio <= 0 {
		ratio = capture.DefaultPixelRatio
	}

	layers, err := stage.CaptureLayers(ctx, surface, ratio, e.Fonts)
	if err != nil {
		return fmt.Errorf("export: capture: %w", err)
	}

	comp := e.Compositor
	if comp == nil {
		comp = composite.New()
	}
	out, err := comp.Composite(layers.Background, layers.Foreground, regions, ratio)
	if err != nil {
		return fmt.Errorf("export: composite: %w", err)
	}

	data, err := composite.EncodePNG(out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	name := FileName(time.Now())
	if e.Sink == nil {
		return fmt.Errorf("export: no sink configured")
	}
	if err := e.Sink(name, data); err != nil {
		return fmt.Errorf("export: sink: %w", err)
	}

	appLog.Info("export finished",
		"name", name,
		"regions", len(regions),
		"bytes", len(data),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return nil
}

// FileName suggests a name for an export taken at t.
func FileName(t time.Time) string {
	return "schedule-" + t.Format("2006-01-02") + ".png"
}

// FileSink writes exports into dir, creating it if needed.
func FileSink(dir string) Sink {
	return func(name string, data []byte) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, name), data, 0o644)
	}
}
