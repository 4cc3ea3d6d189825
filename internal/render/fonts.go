package render

import (
	"os"

	"github.com/gogpu/gg/text"

	appLog "gridcal/internal/log"
)

// Fonts wraps the shared font source for all render passes. A nil or empty
// source is legal: text spans are simply skipped, since a missing font asset
// must degrade the output, not fail the export.
type Fonts struct {
	source *text.FontSource
}

// LoadFonts opens the font at path, falling back to a system font when path
// is empty. Failure to find any font is logged and yields a text-less
// (but working) Fonts.
func LoadFonts(path string) *Fonts {
	if path == "" {
		path = findSystemFont()
	}
	if path == "" {
		appLog.Warn("no font found; text will be omitted from renders")
		return &Fonts{}
	}

	source, err := text.NewFontSourceFromFile(path)
	if err != nil {
		appLog.Error("failed to load font; text will be omitted", err, "path", path)
		return &Fonts{}
	}
	return &Fonts{source: source}
}

// Ready reports whether text can be drawn.
func (f *Fonts) Ready() bool { return f != nil && f.source != nil }

// Close releases the font source.
func (f *Fonts) Close() {
	if f.Ready() {
		_ = f.source.Close()
	}
}

// findSystemFont returns the path of a usable TTF font, or "".
func findSystemFont() string {
	candidates := []string{
		// Linux
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		// macOS
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/Library/Fonts/Arial.ttf",
		// Windows
		"C:\\Windows\\Fonts\\arial.ttf",
		"C:\\Windows\\Fonts\\segoeui.ttf",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
