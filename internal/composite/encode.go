package composite

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EncodePNG encodes the final raster losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("composite: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
