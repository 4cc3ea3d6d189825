package render

import (
	"fmt"
	"math"

	"gridcal/internal/layout"
	"gridcal/internal/model"
	"gridcal/internal/scene"
)

// SurfaceSpec bundles everything the builder needs to lay out one surface.
// Dims must come from the same solver run that sized the live view, so the
// export matches what the user saw.
type SurfaceSpec struct {
	Entries []model.Entry
	Config  model.LayoutConfig
	Dims    model.GridDimensions
	Theme   Theme

	Title      string
	NumColumns int
	StartHour  int
	HourRange  int

	// DayNames override the column headers; defaults to Mon..Sun.
	DayNames []string
}

var defaultDayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const (
	cardGap      = 6
	cardInset    = 10
	cornerRadius = 10
	headerCorner = 14
	headerTrim   = 12
	notesGap     = 6
	labelPad     = 8
)

// BuildSurface constructs the scene tree for the calendar: a background
// chrome layer (wallpaper, grid lines, hour labels) and a foreground content
// layer (glass header, event cards with backdrop blur, all text).
func BuildSurface(spec SurfaceSpec) *scene.Node {
	w, h := spec.Dims.CanvasWidth, spec.Dims.CanvasHeight
	cols := spec.NumColumns
	if cols < 1 {
		cols = 7
	}
	hours := spec.HourRange
	if hours < 1 {
		hours = 1
	}
	colW := spec.Dims.ColumnWidth(cols)
	rowH := spec.Dims.RowHeight(hours)

	const pad = layout.CanvasPadding
	gx := float64(pad + layout.TimeColumnWidth)
	gy := float64(pad + layout.HeaderHeight)

	root := scene.NewNode("surface")
	root.Bounds = scene.Rect{W: w, H: h}
	root.Structural = true

	root.Add(
		buildChrome(spec, w, h, gx, gy, colW, rowH, hours),
		buildCards(spec, gx, gy, colW, rowH, cols),
		buildHeader(spec, w, colW, cols),
	)
	return root
}

func buildChrome(spec SurfaceSpec, w, h, gx, gy, colW, rowH float64, hours int) *scene.Node {
	th := spec.Theme
	chrome := scene.NewNode("chrome")
	chrome.Bounds = scene.Rect{W: w, H: h}
	chrome.Structural = true

	wallpaper := scene.NewNode("wallpaper")
	wallpaper.Bounds = scene.Rect{W: w, H: h}
	wallpaper.Fill = th.Background
	if th.WallpaperPath != "" {
		wallpaper.Image = &scene.ImageFill{Path: th.WallpaperPath}
	}
	chrome.Add(wallpaper)

	gridW := spec.Dims.GridWidth
	gridH := spec.Dims.GridHeight

	for i := 0; i <= hours; i++ {
		line := scene.NewNode(fmt.Sprintf("hourline-%d", i))
		line.Bounds = scene.Rect{X: gx, Y: gy + float64(i)*rowH, W: gridW, H: 1}
		line.Fill = th.GridLine
		chrome.Add(line)

		if i < hours {
			label := scene.NewNode(fmt.Sprintf("hourlabel-%d", i))
			label.Bounds = scene.Rect{
				X: layout.CanvasPadding,
				Y: gy + float64(i)*rowH + 4,
				W: layout.TimeColumnWidth - labelPad,
				H: spec.Config.DetailSize() * layout.LineHeightFactor,
			}
			label.Text = &scene.Text{
				Content: model.Minute((spec.StartHour + i) * 60).String(),
				Size:    spec.Config.DetailSize(),
				Color:   th.Muted,
			}
			chrome.Add(label)
		}
	}

	numCols := spec.NumColumns
	if numCols < 1 {
		numCols = 7
	}
	for c := 0; c <= numCols; c++ {
		sep := scene.NewNode(fmt.Sprintf("daysep-%d", c))
		sep.Bounds = scene.Rect{X: gx + float64(c)*colW, Y: gy, W: 1, H: gridH}
		sep.Fill = th.GridLine
		chrome.Add(sep)
	}
	return chrome
}

func buildHeader(spec SurfaceSpec, w, colW float64, cols int) *scene.Node {
	th := spec.Theme
	cfg := spec.Config

	header := scene.NewNode("header")
	header.Bounds = scene.Rect{
		X: layout.CanvasPadding,
		Y: layout.CanvasPadding,
		W: w - 2*layout.CanvasPadding,
		H: layout.HeaderHeight - headerTrim,
	}
	header.Layer = scene.LayerForeground
	header.Fill = th.Panel
	header.Corners = scene.UniformCorners(headerCorner)
	header.BackdropFilter = fmt.Sprintf("blur(%gpx)", th.CardBlur)

	if spec.Title != "" {
		titleSize := cfg.TitleSize() * 1.3
		title := scene.NewNode("title")
		title.Bounds = scene.Rect{
			X: 16, Y: 10,
			W: header.Bounds.W - 32,
			H: titleSize * layout.LineHeightFactor,
		}
		title.Layer = scene.LayerForeground
		title.Text = &scene.Text{Content: spec.Title, Size: titleSize, Color: th.Text}
		header.Add(title)
	}

	names := spec.DayNames
	if len(names) == 0 {
		names = defaultDayNames
	}
	labelSize := cfg.DetailSize()
	for c := 0; c < cols && c < len(names); c++ {
		day := scene.NewNode(fmt.Sprintf("daylabel-%d", c))
		day.Bounds = scene.Rect{
			X: layout.TimeColumnWidth + float64(c)*colW + labelPad,
			Y: header.Bounds.H - labelSize*layout.LineHeightFactor - 6,
			W: colW - 2*labelPad,
			H: labelSize * layout.LineHeightFactor,
		}
		day.Layer = scene.LayerForeground
		day.Text = &scene.Text{Content: names[c], Size: labelSize, Color: th.Text}
		header.Add(day)
	}
	return header
}

func buildCards(spec SurfaceSpec, gx, gy, colW, rowH float64, cols int) *scene.Node {
	group := scene.NewNode("cards")
	group.Bounds = scene.Rect{W: spec.Dims.CanvasWidth, H: spec.Dims.CanvasHeight}
	group.Structural = true
	group.Layer = scene.LayerForeground

	for _, e := range spec.Entries {
		if e.Day < 0 || e.Day >= cols {
			continue
		}
		group.Add(buildCard(e, spec, gx, gy, colW, rowH))
	}
	return group
}

func buildCard(e model.Entry, spec SurfaceSpec, gx, gy, colW, rowH float64) *scene.Node {
	th := spec.Theme
	cfg := spec.Config

	dur := math.Max(e.DurationHours(), 0.5)
	top := gy + (e.Start.Hours()-float64(spec.StartHour))*rowH
	height := dur*rowH - cardGap

	card := scene.NewNode("card:" + e.ID)
	card.Bounds = scene.Rect{
		X: gx + float64(e.Day)*colW + cardGap/2,
		Y: top + cardGap/2,
		W: colW - cardGap,
		H: height,
	}
	card.Layer = scene.LayerForeground
	card.Fill = th.CardColor(e.ClassType)
	card.Corners = scene.UniformCorners(cornerRadius)
	card.BackdropFilter = fmt.Sprintf("blur(%gpx)", th.CardBlur)

	textW := card.Bounds.W - 2*cardInset
	titleLine := cfg.TitleSize() * layout.LineHeightFactor
	detailLine := cfg.DetailSize() * layout.LineHeightFactor
	y := float64(cardInset)

	addSpan := func(id, content string, size float64, maxLines int) {
		span := scene.NewNode(id)
		span.Bounds = scene.Rect{X: cardInset, Y: y, W: textW, H: size * layout.LineHeightFactor * float64(maxLines)}
		span.Layer = scene.LayerForeground
		span.Text = &scene.Text{Content: content, Size: size, Color: th.Text, MaxLines: maxLines}
		card.Add(span)
	}

	titleLines := layout.WrappedLines(e.Title, cfg.TitleSize(), textW)
	if titleLines > 2 {
		titleLines = 2
	}
	if titleLines < 1 {
		titleLines = 1
	}
	addSpan("title", e.Title, cfg.TitleSize(), titleLines)
	y += titleLine * float64(titleLines)

	detail := cfg.DetailSize()
	if e.FieldVisible(model.FieldClassType, cfg.Show) && e.ClassType != "" {
		addSpan("class-type", e.ClassType, detail, 1)
		y += detailLine
	}
	if e.FieldVisible(model.FieldTime, cfg.Show) {
		addSpan("time", e.TimeLabel(), detail, 1)
		y += detailLine
	}
	if e.FieldVisible(model.FieldLocation, cfg.Show) && e.Location != "" {
		addSpan("location", e.Location, detail, 1)
		y += detailLine
	}
	if e.FieldVisible(model.FieldNotes, cfg.Show) && e.Notes != "" {
		y += notesGap
		addSpan("notes", e.Notes, detail, 2)
	}
	return card
}

