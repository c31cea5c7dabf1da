package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// AlphaBounds returns the smallest rectangle holding every pixel with non-zero alpha.
func AlphaBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	var r image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

// CropAndCenter crops img to its visible pixels, scales them so the longer
// side spans fillRatio of a size x size canvas, and centers the result.
func CropAndCenter(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	src := AlphaBounds(img)
	if src.Empty() {
		return canvas
	}

	scale := float64(size) * fillRatio / math.Max(float64(src.Dx()), float64(src.Dy()))
	w := max(1, int(float64(src.Dx())*scale+0.5))
	h := max(1, int(float64(src.Dy())*scale+0.5))

	off := image.Pt((size-w)/2, (size-h)/2)
	draw.CatmullRom.Scale(canvas, image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, img, src, draw.Src, nil)
	return canvas
}
