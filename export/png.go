// Package export adapts a parsed model and its interpreted meshes (§4.6)
// into external asset formats: a glTF 2.0 binary-blob document and
// per-texture PNG images. It has no algorithmic decisions of its own —
// its contract is a faithful shape translation from the core's types.
package export

import (
	"bytes"
	"image"
	"image/png"

	"github.com/n64dev/modelkit/texture"
)

// EncodePNG encodes colors — row-major, row 0 first — as a PNG of the
// given dimensions. Output is unflipped: row 0 of colors becomes row 0 of
// the image, resolving the reference implementation's inconsistent
// flip/no-flip pathways in favor of no flip.
func EncodePNG(colors []texture.Color, width, height int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if i >= len(colors) {
				continue
			}
			c := colors[i]
			off := img.PixOffset(x, y)
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
