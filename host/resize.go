package host

import (
	"image"
)

// Resize upscales source by an integer ratio using nearest-neighbor
// sampling, the cheapest scaling that still keeps NES pixel art crisp.
func Resize(source image.Image, w int, h int, ratio int) *image.RGBA {
	tw := w * ratio
	th := h * ratio

	target := image.NewRGBA(image.Rect(0, 0, tw, th))

	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			sx := x / ratio
			sy := y / ratio
			target.Set(x, y, source.At(sx, sy))
		}
	}

	return target
}
